package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jinxed-vi/pawder-bot/internal/domain/stat"
)

func TestFeedRestoresHunger(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	if _, err := svc.ModifyStat(ctx, "alice", StatHunger, 50, stat.ModeSet); err != nil {
		t.Fatalf("set hunger: %v", err)
	}

	got, err := svc.Feed(ctx, "alice")
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if got != 50+feedRestore {
		t.Errorf("hunger after feed = %d, want %d", got, 50+feedRestore)
	}
	// Caring raises willpower too.
	if got := statValue(t, svc, "alice", StatWillpower); got != 100 {
		t.Errorf("willpower after feed = %d, want capped 100", got)
	}
}

func TestCareCooldownWindow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	step := fixedClock(svc, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	mustHatch(t, svc, "alice")

	if _, err := svc.ModifyStat(ctx, "alice", StatHunger, 40, stat.ModeSet); err != nil {
		t.Fatalf("set hunger: %v", err)
	}

	if _, err := svc.Feed(ctx, "alice"); err != nil {
		t.Fatalf("first feed: %v", err)
	}

	step(10 * time.Minute)
	_, err := svc.Feed(ctx, "alice")
	var cd *CooldownError
	if !errors.As(err, &cd) {
		t.Fatalf("feed inside window: got %v, want CooldownError", err)
	}
	if cd.Remaining != 20*time.Minute {
		t.Errorf("remaining = %s, want 20m", cd.Remaining)
	}

	step(20 * time.Minute)
	if _, err := svc.Feed(ctx, "alice"); err != nil {
		t.Fatalf("feed after window: %v", err)
	}
}

func TestCareAtFullValueNeverStartsCooldown(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	fixedClock(svc, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	mustHatch(t, svc, "alice")

	// The cooldown clock only advances on an actual increase, so feeding a
	// full pet can be repeated without waiting.
	for i := 0; i < 3; i++ {
		got, err := svc.Feed(ctx, "alice")
		if err != nil {
			t.Fatalf("feed %d at full hunger: %v", i, err)
		}
		if got != 100 {
			t.Errorf("feed %d result = %d, want 100", i, got)
		}
	}
}

func TestDecayDoesNotResetCooldown(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	step := fixedClock(svc, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	mustHatch(t, svc, "alice")

	if _, err := svc.ModifyStat(ctx, "alice", StatHunger, 40, stat.ModeSet); err != nil {
		t.Fatalf("set hunger: %v", err)
	}
	if _, err := svc.Feed(ctx, "alice"); err != nil {
		t.Fatalf("feed: %v", err)
	}

	// A decrement between feeds must not refresh last_updated.
	step(10 * time.Minute)
	if _, err := svc.ModifyStat(ctx, "alice", StatHunger, -5, stat.ModeAdd); err != nil {
		t.Fatalf("decay: %v", err)
	}

	step(20 * time.Minute)
	if _, err := svc.Feed(ctx, "alice"); err != nil {
		t.Fatalf("feed after original window elapsed: %v", err)
	}
}

func TestCareCooldownUnderConcurrency(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	fixedClock(svc, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	mustHatch(t, svc, "alice")

	if _, err := svc.ModifyStat(ctx, "alice", StatHunger, 40, stat.ModeSet); err != nil {
		t.Fatalf("set hunger: %v", err)
	}

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Feed(ctx, "alice")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, blocked int
	for err := range errs {
		var cd *CooldownError
		switch {
		case err == nil:
			ok++
		case errors.As(err, &cd):
			blocked++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || blocked != attempts-1 {
		t.Errorf("got %d successes and %d cooldown rejections, want 1 and %d", ok, blocked, attempts-1)
	}
	if got := statValue(t, svc, "alice", StatHunger); got != 40+feedRestore {
		t.Errorf("hunger = %d, want exactly one restore to %d", got, 40+feedRestore)
	}
}

func TestPlayEarnsCoins(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	if _, err := svc.ModifyStat(ctx, "alice", StatHappiness, 50, stat.ModeSet); err != nil {
		t.Fatalf("set happiness: %v", err)
	}

	value, coins, err := svc.Play(ctx, "alice")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if value != 50+playRestore {
		t.Errorf("happiness = %d, want %d", value, 50+playRestore)
	}
	if coins < playRewardMin || coins > playRewardMax {
		t.Errorf("coins = %d, want within [%d, %d]", coins, playRewardMin, playRewardMax)
	}
	if got := statValue(t, svc, "alice", StatMoney); got != 10+coins {
		t.Errorf("money = %d, want %d", got, 10+coins)
	}
}

func TestPlayFailureLeavesNoPartialWrite(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	if _, err := svc.ModifyStat(ctx, "alice", StatHappiness, 50, stat.ModeSet); err != nil {
		t.Fatalf("set happiness: %v", err)
	}

	// With the money stat gone the coin grant cannot succeed; the whole
	// command must roll back, happiness restore included.
	if _, err := svc.DeleteStat(ctx, StatMoney); err != nil {
		t.Fatalf("delete money: %v", err)
	}

	if _, _, err := svc.Play(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("play without money stat: got %v, want ErrNotFound", err)
	}
	if got := statValue(t, svc, "alice", StatHappiness); got != 50 {
		t.Errorf("happiness after failed play = %d, want untouched 50", got)
	}

	// The rolled-back restore must not have consumed the cooldown either.
	if _, err := svc.Care(ctx, "alice", StatHappiness, playRestore); err != nil {
		t.Errorf("care after rolled-back play: %v", err)
	}
}

func TestCleanRestoresFully(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	if _, err := svc.ModifyStat(ctx, "alice", StatCleanliness, 5, stat.ModeSet); err != nil {
		t.Fatalf("set cleanliness: %v", err)
	}
	got, err := svc.Clean(ctx, "alice")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if got != 100 {
		t.Errorf("cleanliness = %d, want 100", got)
	}
}

func TestCareWithoutPet(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Feed(context.Background(), "ghost"); !errors.Is(err, ErrNoPet) {
		t.Fatalf("got %v, want ErrNoPet", err)
	}
}
