package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/rnslabs/badgelock/internal/models"
	handler "github.com/rnslabs/badgelock/internal/server/handler/http"
)

func newTestRouter() http.Handler {
	lockHandler := &handler.LockHandler{LockerService: &fakeLockerService{}}
	statusHandler := &handler.StatusHandler{StatusService: &fakeStatusService{
		status: models.LockStatus{
			AdminBadgeResource:   "resource_admin_v1",
			UpgradeBadgeResource: "resource_upgrade_v1",
		},
	}}
	return handler.NewRouter(lockHandler, statusHandler, zap.NewNop())
}

func TestRouter_StatusRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d; want %d", w.Code, http.StatusOK)
	}
}

func TestRouter_LockRequiresJSONContentType(t *testing.T) {
	router := newTestRouter()

	b, _ := json.Marshal(handler.LockRequest{ResourceID: "resource_admin_v1", Amount: "1"})
	req := httptest.NewRequest(http.MethodPost, "/api/lock/admin", bytes.NewReader(b))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d; want %d", w.Code, http.StatusUnsupportedMediaType)
	}
}

func TestRouter_LockRoutes(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/api/lock/admin", "/api/lock/upgrade"} {
		b, _ := json.Marshal(handler.LockRequest{ResourceID: "resource_admin_v1", Amount: "1"})
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("POST %s status = %d; want %d", path, w.Code, http.StatusOK)
		}
	}
}
