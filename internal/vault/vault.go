// Package vault implements the one-way badge vault: two fixed-identity
// accumulator slots that absorb badge bundles permanently. There is no
// withdrawal path — once a bundle is merged into a slot, no operation
// exposed here can ever extract it.
package vault

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rnslabs/badgelock/internal/models"
)

// slot is one accumulator: a fixed resource identity plus a
// monotonically non-decreasing total.
type slot struct {
	mu       sync.Mutex
	resource models.ResourceID
	total    decimal.Decimal
	touched  bool
}

// Vault holds the two accumulator slots. It is an explicitly owned state
// object: the surrounding environment constructs it once and passes it to
// each operation, there is no package-level instance.
type Vault struct {
	admin   slot
	upgrade slot

	// now supplies event timestamps. Overridable in tests.
	now func() time.Time
}

// New creates a vault that accepts exactly the two given badge resources.
// Both accumulators start at zero and no privileged handle is returned:
// nothing produced here can later reconfigure, pause, or withdraw.
//
// Returns models.ErrInvalidConfiguration when the identifiers are equal
// or either is empty — equal identifiers would make the two slots
// indistinguishable.
func New(adminResource, upgradeResource models.ResourceID) (*Vault, error) {
	if adminResource == "" || upgradeResource == "" || adminResource == upgradeResource {
		return nil, models.ErrInvalidConfiguration
	}
	v := &Vault{now: time.Now}
	v.admin.resource = adminResource
	v.admin.total = decimal.Zero
	v.upgrade.resource = upgradeResource
	v.upgrade.total = decimal.Zero
	return v, nil
}

// LockAdminBadges permanently absorbs an admin badge bundle.
//
// The bundle's full amount is merged into the admin accumulator and its
// handle is invalidated. On success the returned event carries the amount
// just absorbed, the new running total, and a minute-truncated timestamp.
//
// Fails with models.ErrWrongResourceType when the bundle is not of the
// admin resource, and with models.ErrBadgeConsumed when the handle was
// already spent. A failed call leaves both the bundle and the accumulator
// untouched.
func (v *Vault) LockAdminBadges(b *models.Badge) (models.LockEvent, error) {
	return v.lock(&v.admin, models.AdminBadges, b)
}

// LockUpgradeBadges permanently absorbs an upgrade badge bundle. Contract
// identical to LockAdminBadges, over the upgrade slot.
func (v *Vault) LockUpgradeBadges(b *models.Badge) (models.LockEvent, error) {
	return v.lock(&v.upgrade, models.UpgradeBadges, b)
}

func (v *Vault) lock(s *slot, class models.BadgeClass, b *models.Badge) (models.LockEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ResourceID() != s.resource {
		return models.LockEvent{}, models.ErrWrongResourceType
	}

	// Consume invalidates the caller's handle; after this point the
	// bundle no longer exists as an independently held unit.
	amount, err := b.Consume()
	if err != nil {
		return models.LockEvent{}, err
	}

	s.total = s.total.Add(amount)
	s.touched = true

	return models.LockEvent{
		Class:          class,
		BadgesLocked:   amount,
		TotalLockedNow: s.total,
		Timestamp:      v.now().Truncate(time.Minute),
	}, nil
}

// Status returns a snapshot of both totals and both fixed identities.
// Each accumulator is read under its own lock; the pair is not required
// to be torn-read free across slots.
func (v *Vault) Status() models.LockStatus {
	v.admin.mu.Lock()
	adminTotal := v.admin.total
	v.admin.mu.Unlock()

	v.upgrade.mu.Lock()
	upgradeTotal := v.upgrade.total
	v.upgrade.mu.Unlock()

	return models.LockStatus{
		AdminBadgesLocked:    adminTotal,
		UpgradeBadgesLocked:  upgradeTotal,
		AdminBadgeResource:   v.admin.resource,
		UpgradeBadgeResource: v.upgrade.resource,
	}
}

// RestoreTotals rehydrates the accumulators from the persisted event log
// before the vault starts serving. It refuses to run once either slot has
// absorbed a deposit in-process, and refuses negative values, so it can
// never be used to decrease a live accumulator.
func (v *Vault) RestoreTotals(admin, upgrade decimal.Decimal) error {
	if admin.IsNegative() || upgrade.IsNegative() {
		return models.ErrInvalidConfiguration
	}

	v.admin.mu.Lock()
	defer v.admin.mu.Unlock()
	v.upgrade.mu.Lock()
	defer v.upgrade.mu.Unlock()

	if v.admin.touched || v.upgrade.touched {
		return models.ErrInvalidConfiguration
	}
	v.admin.total = admin
	v.upgrade.total = upgrade
	return nil
}
