package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rnslabs/badgelock/internal/models"
	handler "github.com/rnslabs/badgelock/internal/server/handler/http"
)

// fakeLockerService records calls and returns preconfigured results.
type fakeLockerService struct {
	called        bool
	receivedBadge *models.Badge

	event models.LockEvent
	err   error
}

func (f *fakeLockerService) LockAdminBadges(ctx context.Context, b *models.Badge) (models.LockEvent, error) {
	f.called = true
	f.receivedBadge = b
	return f.event, f.err
}

func (f *fakeLockerService) LockUpgradeBadges(ctx context.Context, b *models.Badge) (models.LockEvent, error) {
	f.called = true
	f.receivedBadge = b
	return f.event, f.err
}

func TestLockHandler_BadJSON(t *testing.T) {
	h := &handler.LockHandler{LockerService: &fakeLockerService{}}
	req := httptest.NewRequest(http.MethodPost, "/api/lock/admin", bytes.NewBufferString("not-a-json"))
	w := httptest.NewRecorder()

	h.LockAdmin(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
	if body := w.Body.String(); body != "invalid body\n" {
		t.Errorf("body = %q; want %q", body, "invalid body\n")
	}
}

func TestLockHandler_BadAmount(t *testing.T) {
	fake := &fakeLockerService{}
	h := &handler.LockHandler{LockerService: fake}

	b, _ := json.Marshal(handler.LockRequest{ResourceID: "resource_admin_v1", Amount: "five"})
	req := httptest.NewRequest(http.MethodPost, "/api/lock/admin", bytes.NewReader(b))
	w := httptest.NewRecorder()

	h.LockAdmin(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
	if fake.called {
		t.Error("service must not be called for a malformed amount")
	}
}

func TestLockHandler_NonPositiveAmount(t *testing.T) {
	fake := &fakeLockerService{}
	h := &handler.LockHandler{LockerService: fake}

	b, _ := json.Marshal(handler.LockRequest{ResourceID: "resource_admin_v1", Amount: "0"})
	req := httptest.NewRequest(http.MethodPost, "/api/lock/admin", bytes.NewReader(b))
	w := httptest.NewRecorder()

	h.LockAdmin(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
	if fake.called {
		t.Error("service must not be called for a non-positive amount")
	}
}

func TestLockHandler_WrongResourceType(t *testing.T) {
	fake := &fakeLockerService{err: models.ErrWrongResourceType}
	h := &handler.LockHandler{LockerService: fake}

	b, _ := json.Marshal(handler.LockRequest{ResourceID: "resource_other", Amount: "3"})
	req := httptest.NewRequest(http.MethodPost, "/api/lock/admin", bytes.NewReader(b))
	w := httptest.NewRecorder()

	h.LockAdmin(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d; want %d", w.Code, http.StatusConflict)
	}
}

func TestLockHandler_ServiceError(t *testing.T) {
	fake := &fakeLockerService{err: errors.New("log unavailable")}
	h := &handler.LockHandler{LockerService: fake}

	b, _ := json.Marshal(handler.LockRequest{ResourceID: "resource_admin_v1", Amount: "3"})
	req := httptest.NewRequest(http.MethodPost, "/api/lock/admin", bytes.NewReader(b))
	w := httptest.NewRecorder()

	h.LockAdmin(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d; want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestLockHandler_Success(t *testing.T) {
	event := models.LockEvent{
		Class:          models.AdminBadges,
		BadgesLocked:   decimal.RequireFromString("5"),
		TotalLockedNow: decimal.RequireFromString("5"),
		Timestamp:      time.Date(2025, 6, 1, 12, 34, 0, 0, time.UTC),
	}
	fake := &fakeLockerService{event: event}
	h := &handler.LockHandler{LockerService: fake}

	b, _ := json.Marshal(handler.LockRequest{ResourceID: "resource_admin_v1", Amount: "5"})
	req := httptest.NewRequest(http.MethodPost, "/api/lock/admin", bytes.NewReader(b))
	w := httptest.NewRecorder()

	h.LockAdmin(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if !fake.called {
		t.Fatal("expected service to be called")
	}
	if got := fake.receivedBadge.ResourceID(); got != "resource_admin_v1" {
		t.Errorf("badge resource = %q; want %q", got, "resource_admin_v1")
	}

	var resp models.LockEvent
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.TotalLockedNow.Equal(event.TotalLockedNow) {
		t.Errorf("total = %s; want %s", resp.TotalLockedNow, event.TotalLockedNow)
	}
}

func TestLockHandler_UpgradeSuccess(t *testing.T) {
	event := models.LockEvent{
		Class:          models.UpgradeBadges,
		BadgesLocked:   decimal.RequireFromString("0.5"),
		TotalLockedNow: decimal.RequireFromString("2.5"),
		Timestamp:      time.Date(2025, 6, 1, 12, 34, 0, 0, time.UTC),
	}
	fake := &fakeLockerService{event: event}
	h := &handler.LockHandler{LockerService: fake}

	b, _ := json.Marshal(handler.LockRequest{ResourceID: "resource_upgrade_v1", Amount: "0.5"})
	req := httptest.NewRequest(http.MethodPost, "/api/lock/upgrade", bytes.NewReader(b))
	w := httptest.NewRecorder()

	h.LockUpgrade(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	var resp models.LockEvent
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Class != models.UpgradeBadges {
		t.Errorf("class = %v; want %v", resp.Class, models.UpgradeBadges)
	}
}
