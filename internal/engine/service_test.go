package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jinxed-vi/pawder-bot/internal/infra/storage"
	"github.com/jinxed-vi/pawder-bot/internal/platform/logger"
)

// newTestService spins up a real SQLite database in a temp dir, seeded with
// the default schema and catalog. Every test gets its own database.
func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := storage.InitSQLite(filepath.Join(t.TempDir(), "pawder_test.db"))
	if err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := NewService(storage.NewStore(db), logger.NewLogger("error"), Config{})
	if err := svc.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}
	return svc
}

// fixedClock pins the service's time source and returns a stepper.
func fixedClock(svc *Service, start time.Time) func(d time.Duration) {
	now := start
	svc.SetClock(func() time.Time { return now })
	return func(d time.Duration) { now = now.Add(d) }
}

func mustHatch(t *testing.T, svc *Service, ownerID string) {
	t.Helper()
	if err := svc.Hatch(context.Background(), ownerID); err != nil {
		t.Fatalf("hatch %s: %v", ownerID, err)
	}
}

// statValue reads one stat through the public status surface.
func statValue(t *testing.T, svc *Service, ownerID, name string) int {
	t.Helper()
	rep, err := svc.Status(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("status %s: %v", ownerID, err)
	}
	for _, sv := range rep.Stats {
		if sv.Name == name {
			return sv.Value
		}
	}
	t.Fatalf("owner %s has no stat %q", ownerID, name)
	return 0
}

func hasStat(t *testing.T, svc *Service, ownerID, name string) bool {
	t.Helper()
	rep, err := svc.Status(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("status %s: %v", ownerID, err)
	}
	for _, sv := range rep.Stats {
		if sv.Name == name {
			return true
		}
	}
	return false
}
