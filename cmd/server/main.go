// Package main initializes and starts the badge lock server, setting up
// configuration, logging, the database-backed event log, the vault, and
// the HTTP routes.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/rnslabs/badgelock/internal/config"
	"github.com/rnslabs/badgelock/internal/db"
	"github.com/rnslabs/badgelock/internal/logger"
	"github.com/rnslabs/badgelock/internal/models"
	"github.com/rnslabs/badgelock/internal/repository"
	"github.com/rnslabs/badgelock/internal/resource"
	"github.com/rnslabs/badgelock/internal/server/handler/http"
	"github.com/rnslabs/badgelock/internal/service"
	"github.com/rnslabs/badgelock/internal/vault"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dbName := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Without configured identifiers, define fresh badge resources so a
	// local instance can run against an in-process value system.
	adminResource := models.ResourceID(options.AdminBadgeResource)
	upgradeResource := models.ResourceID(options.UpgradeBadgeResource)
	if adminResource == "" && upgradeResource == "" {
		registry := resource.NewRegistry()
		adminResource = registry.Define("V1 Admin Badge", "V1ADMIN")
		upgradeResource = registry.Define("V1 Upgrade Badge", "V1UPGRADE")
		zapLogger.Warn("no badge resources configured, defined ephemeral ones",
			zap.String("admin_badge_resource", string(adminResource)),
			zap.String("upgrade_badge_resource", string(upgradeResource)),
		)
	}

	// Create the vault with its two fixed badge resources. Equal or
	// missing identifiers abort startup; after this point the identities
	// can never change.
	v, err := vault.New(adminResource, upgradeResource)
	if err != nil {
		zapLogger.Fatal("invalid vault configuration", zap.Error(err))
	}

	// Initialize PostgreSQL connection and the append-only event log.
	postgresDB, err := db.InitPostgres(dbName)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	eventLog := repository.NewPostgresEventLog(postgresDB)

	// Build the locker service; this rehydrates totals from the log.
	lockerService, err := service.NewLockerService(context.Background(), v, eventLog, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init locker service", zap.Error(err))
	}

	// Periodically log the lock totals.
	lockerService.StartStatusReporter(context.Background(), time.Hour)

	// Create HTTP handlers for the lock and status endpoints.
	lockHandler := &http.LockHandler{LockerService: lockerService}
	statusHandler := &http.StatusHandler{StatusService: lockerService}

	// Build the router with middleware and routes.
	router := http.NewRouter(lockHandler, statusHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", addr),
		zap.String("admin_badge_resource", string(adminResource)),
		zap.String("upgrade_badge_resource", string(upgradeResource)),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
