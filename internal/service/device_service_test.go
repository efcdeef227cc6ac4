package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Darkone83/LoveByte/internal/config"
	"github.com/Darkone83/LoveByte/internal/domain"
	"github.com/Darkone83/LoveByte/internal/repository"
)

func newDeviceService() (*DeviceService, *repository.DeviceRepository) {
	repo := repository.NewDeviceRepository()
	svc := NewDeviceService(repo, config.DeviceConfig{OnlineWindow: 30 * time.Second})
	return svc, repo
}

func TestCheckInNormalizes(t *testing.T) {
	svc, repo := newDeviceService()

	id, err := svc.CheckIn("  Alice ")
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if id != "alice" {
		t.Errorf("id: got %q, want %q", id, "alice")
	}
	if !repo.IsKnown("alice") {
		t.Error("alice not registered")
	}

	// Разный регистр и пробелы — одна и та же запись
	if _, err := svc.CheckIn("ALICE"); err != nil {
		t.Fatalf("CheckIn ALICE: %v", err)
	}
	if len(repo.List()) != 1 {
		t.Errorf("devices: got %d, want 1", len(repo.List()))
	}
}

func TestCheckInEmptyID(t *testing.T) {
	svc, _ := newDeviceService()

	if _, err := svc.CheckIn("   "); !errors.Is(err, ErrInvalidDeviceID) {
		t.Fatalf("CheckIn whitespace: got %v, want ErrInvalidDeviceID", err)
	}
	if _, err := svc.CheckIn(""); !errors.Is(err, ErrInvalidDeviceID) {
		t.Fatalf("CheckIn empty: got %v, want ErrInvalidDeviceID", err)
	}
}

func TestLivenessBoundary(t *testing.T) {
	svc, repo := newDeviceService()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.CheckIn("alice", base)

	status, err := svc.Liveness("alice", base.Add(29*time.Second))
	if err != nil {
		t.Fatalf("Liveness: %v", err)
	}
	if status != domain.StatusOnline {
		t.Errorf("29s: got %s, want Online", status)
	}

	// Строгое "меньше": ровно 30 секунд — уже Offline
	status, err = svc.Liveness("alice", base.Add(30*time.Second))
	if err != nil {
		t.Fatalf("Liveness: %v", err)
	}
	if status != domain.StatusOffline {
		t.Errorf("30s: got %s, want Offline", status)
	}
}

func TestLivenessUnknownDevice(t *testing.T) {
	svc, _ := newDeviceService()
	if _, err := svc.Liveness("ghost", time.Now()); !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("Liveness unknown: got %v, want ErrUnknownDevice", err)
	}
}

func TestListSortedWithStatuses(t *testing.T) {
	svc, repo := newDeviceService()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.CheckIn("bob", base.Add(-time.Minute))
	repo.CheckIn("alice", base)

	list := svc.List(base.Add(5 * time.Second))
	if len(list) != 2 {
		t.Fatalf("List: got %d, want 2", len(list))
	}
	if list[0].ID != "alice" || list[1].ID != "bob" {
		t.Errorf("order: got %s, %s", list[0].ID, list[1].ID)
	}
	if list[0].Status != domain.StatusOnline {
		t.Errorf("alice: got %s, want Online", list[0].Status)
	}
	if list[1].Status != domain.StatusOffline {
		t.Errorf("bob: got %s, want Offline", list[1].Status)
	}
}
