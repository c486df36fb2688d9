package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/jinxed-vi/pawder-bot/internal/domain/stat"
)

func TestModifyStatClampsToCap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	got, err := svc.ModifyStat(ctx, "alice", StatHunger, 500, stat.ModeAdd)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if got != 100 {
		t.Errorf("overfeed result = %d, want clamped 100", got)
	}

	got, err = svc.ModifyStat(ctx, "alice", StatHunger, -500, stat.ModeAdd)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if got != 0 {
		t.Errorf("starve result = %d, want floored 0", got)
	}
}

func TestModifyStatUncappedMoney(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	got, err := svc.ModifyStat(ctx, "alice", StatMoney, 100000, stat.ModeAdd)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if got != 100010 {
		t.Errorf("money = %d, want 100010", got)
	}
}

func TestModifyStatSetMode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	got, err := svc.ModifyStat(ctx, "alice", StatHunger, 37, stat.ModeSet)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if got != 37 {
		t.Errorf("set result = %d, want 37", got)
	}

	// Setting again to the same value changes nothing.
	got, err = svc.ModifyStat(ctx, "alice", StatHunger, 37, stat.ModeSet)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if got != 37 {
		t.Errorf("repeat set result = %d, want 37", got)
	}

	got, err = svc.ModifyStat(ctx, "alice", StatHunger, 999, stat.ModeSet)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if got != 100 {
		t.Errorf("set above cap = %d, want 100", got)
	}
}

func TestModifyStatAbsentSignals(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	if _, err := svc.ModifyStat(ctx, "alice", "charisma", 5, stat.ModeAdd); !errors.Is(err, ErrNotFound) {
		t.Errorf("undefined stat: got %v, want ErrNotFound", err)
	}
	if _, err := svc.ModifyStat(ctx, "ghost", StatHunger, 5, stat.ModeAdd); !errors.Is(err, ErrNoPet) {
		t.Errorf("no pet: got %v, want ErrNoPet", err)
	}
}
