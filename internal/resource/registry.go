// Package resource provides an in-process stand-in for the surrounding
// value system: it defines badge resource types and mints owned bundles
// of them. The vault itself never mints; this package exists so the
// serving harness and tests can exercise deposits the same way external
// tooling would.
package resource

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rnslabs/badgelock/internal/models"
)

// Definition describes one registered badge resource.
type Definition struct {
	// ID is the unique identifier of the resource.
	ID models.ResourceID
	// Name is the human-readable resource name.
	Name string
	// Symbol is the short ticker-style label.
	Symbol string
}

// Registry issues resource identifiers and badge bundles. Safe for
// concurrent use.
type Registry struct {
	mu          sync.RWMutex
	definitions map[models.ResourceID]Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[models.ResourceID]Definition)}
}

// Define registers a new badge resource and returns its identifier.
func (r *Registry) Define(name, symbol string) models.ResourceID {
	id := models.ResourceID("resource_" + uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[id] = Definition{ID: id, Name: name, Symbol: symbol}
	return id
}

// Exists reports whether the identifier refers to a registered resource.
func (r *Registry) Exists(id models.ResourceID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.definitions[id]
	return ok
}

// Definition looks up a registered resource by identifier.
func (r *Registry) Definition(id models.ResourceID) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[id]
	if !ok {
		return Definition{}, fmt.Errorf("definition %q: %w", id, models.ErrUnknownResource)
	}
	return def, nil
}

// Mint issues a new badge bundle of a registered resource. The bundle is
// an owned, single-use handle; whoever holds it controls its one
// Consume.
func (r *Registry) Mint(id models.ResourceID, amount decimal.Decimal) (*models.Badge, error) {
	if !r.Exists(id) {
		return nil, fmt.Errorf("mint %q: %w", id, models.ErrUnknownResource)
	}
	return models.NewBadge(id, amount)
}
