package cart

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/swiftkart/checkout-service/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func newTestService(t *testing.T) (*Service, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestReplaceNormalizesBeforePersisting(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()

	stored, err := svc.Replace(context.Background(), userID, Snapshot{
		line("p1", 2, "499"),
		line("p2", 0, "999"),
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 line, got %d", len(stored))
	}

	loaded, err := repo.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Product.ID != "p1" {
		t.Fatalf("unexpected persisted snapshot: %+v", loaded)
	}
}

func TestReplaceRejectsInvalidSnapshotWithoutPersisting(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()

	if _, err := svc.Replace(context.Background(), userID, Snapshot{line("p1", -3, "499")}); err == nil {
		t.Fatal("expected invalid snapshot to be rejected")
	}

	loaded, err := repo.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.IsEmpty() {
		t.Fatalf("expected nothing persisted, got %+v", loaded)
	}
}

func TestGetReturnsEmptySnapshotForNewUser(t *testing.T) {
	svc, _ := newTestService(t)

	snapshot, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !snapshot.IsEmpty() {
		t.Fatalf("expected empty snapshot, got %+v", snapshot)
	}
}

func TestClearRemovesSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()

	if _, err := svc.Replace(context.Background(), userID, Snapshot{line("p1", 1, "100")}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := svc.Clear(context.Background(), userID); err != nil {
		t.Fatalf("clear: %v", err)
	}

	snapshot, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !snapshot.IsEmpty() {
		t.Fatalf("expected cleared snapshot, got %+v", snapshot)
	}
}

func TestLoadForCheckoutRejectsEmptyCart(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.LoadForCheckout(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected empty cart to be rejected")
	}
}
