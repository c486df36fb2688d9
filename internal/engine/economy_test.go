package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jinxed-vi/pawder-bot/internal/domain/item"
	"github.com/jinxed-vi/pawder-bot/internal/domain/stat"
)

func TestPurchaseInsufficientFunds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	// Bread costs 20, starting money is 10.
	if err := svc.Purchase(ctx, "alice", "bread"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
	if got := statValue(t, svc, "alice", StatMoney); got != 10 {
		t.Errorf("money after failed purchase = %d, want untouched 10", got)
	}
	inv, _ := svc.ListInventory(ctx, "alice")
	if len(inv) != 0 {
		t.Errorf("inventory after failed purchase = %v, want empty", inv)
	}
}

func TestPurchaseExactPrice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	// Apple costs exactly the starting money.
	if err := svc.Purchase(ctx, "alice", "apple"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if got := statValue(t, svc, "alice", StatMoney); got != 0 {
		t.Errorf("money = %d, want 0", got)
	}
	inv, _ := svc.ListInventory(ctx, "alice")
	if inv["apple"] != 1 {
		t.Errorf("inventory = %v, want one apple", inv)
	}
}

func TestPurchaseUnknownItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	if err := svc.Purchase(ctx, "alice", "unobtainium"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUseItemAppliesEffect(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	if _, err := svc.ModifyStat(ctx, "alice", StatHunger, 50, stat.ModeSet); err != nil {
		t.Fatalf("set hunger: %v", err)
	}
	if err := svc.GrantItems(ctx, "alice", "apple", 1); err != nil {
		t.Fatalf("grant: %v", err)
	}

	got, err := svc.UseItem(ctx, "alice", "apple")
	if err != nil {
		t.Fatalf("use: %v", err)
	}
	if got != 75 {
		t.Errorf("hunger after apple = %d, want 75", got)
	}

	inv, _ := svc.ListInventory(ctx, "alice")
	if len(inv) != 0 {
		t.Errorf("inventory = %v, want empty after consuming", inv)
	}

	// The apple is gone; using it again fails without side effects.
	if _, err := svc.UseItem(ctx, "alice", "apple"); !errors.Is(err, ErrNotOwned) {
		t.Errorf("reuse: got %v, want ErrNotOwned", err)
	}
	if got := statValue(t, svc, "alice", StatHunger); got != 75 {
		t.Errorf("hunger after failed reuse = %d, want 75", got)
	}
}

func TestUseItemRaisesWillpower(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	if _, err := svc.ModifyStat(ctx, "alice", StatWillpower, 50, stat.ModeSet); err != nil {
		t.Fatalf("set willpower: %v", err)
	}
	if err := svc.GrantItems(ctx, "alice", "soap", 1); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if _, err := svc.UseItem(ctx, "alice", "soap"); err != nil {
		t.Fatalf("use: %v", err)
	}
	if got := statValue(t, svc, "alice", StatWillpower); got != 50+useWillpowerBonus {
		t.Errorf("willpower = %d, want %d", got, 50+useWillpowerBonus)
	}
}

func TestGrantAndRevoke(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	if err := svc.GrantItems(ctx, "alice", "toy", 3); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := svc.RevokeItems(ctx, "alice", "toy", 2); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	inv, _ := svc.ListInventory(ctx, "alice")
	if inv["toy"] != 1 {
		t.Errorf("inventory = %v, want one toy", inv)
	}

	// Revoking more than held fails and changes nothing.
	if err := svc.RevokeItems(ctx, "alice", "toy", 2); !errors.Is(err, ErrNotOwned) {
		t.Errorf("over-revoke: got %v, want ErrNotOwned", err)
	}
	inv, _ = svc.ListInventory(ctx, "alice")
	if inv["toy"] != 1 {
		t.Errorf("inventory after failed revoke = %v, want one toy", inv)
	}

	if err := svc.GrantItems(ctx, "alice", "unobtainium", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("grant unknown item: got %v, want ErrNotFound", err)
	}
}

func TestClaimPrize(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	step := fixedClock(svc, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	mustHatch(t, svc, "alice")

	// First claim is always free: the pet hatches with a zero claim time.
	won, err := svc.ClaimPrize(ctx, "alice")
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	inv, _ := svc.ListInventory(ctx, "alice")
	if inv[won.ID] != 1 {
		t.Errorf("inventory = %v, want one %s", inv, won.ID)
	}

	_, err = svc.ClaimPrize(ctx, "alice")
	var cd *CooldownError
	if !errors.As(err, &cd) {
		t.Fatalf("second claim: got %v, want CooldownError", err)
	}
	if cd.Remaining != 24*time.Hour {
		t.Errorf("remaining = %s, want 24h", cd.Remaining)
	}

	step(24 * time.Hour)
	if _, err := svc.ClaimPrize(ctx, "alice"); err != nil {
		t.Fatalf("claim after cooldown: %v", err)
	}
}

func TestShopListsOnlyVisibleItems(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	hidden := item.CatalogItem{
		ID:     "debug-elixir",
		Name:   "Debug Elixir",
		Price:  1,
		Effect: item.Effect{Stat: StatHunger, Value: 100},
	}
	if err := svc.DefineItem(ctx, hidden); err != nil {
		t.Fatalf("define: %v", err)
	}

	items, err := svc.Shop(ctx)
	if err != nil {
		t.Fatalf("shop: %v", err)
	}
	for _, it := range items {
		if it.ID == hidden.ID {
			t.Errorf("hidden item %s listed in shop", it.ID)
		}
	}
	if len(items) != 4 {
		t.Errorf("shop has %d items, want the 4 seeded", len(items))
	}
}

func TestLeaderboardRanksByMoney(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	balances := map[string]int{"poor": 5, "middle": 50, "rich": 500}
	for owner, target := range balances {
		mustHatch(t, svc, owner)
		if _, err := svc.ModifyStat(ctx, owner, StatMoney, target, stat.ModeSet); err != nil {
			t.Fatalf("set money for %s: %v", owner, err)
		}
	}

	top, err := svc.Leaderboard(ctx, 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("got %d rows, want 3", len(top))
	}
	wantOrder := []string{"rich", "middle", "poor"}
	for i, owner := range wantOrder {
		if top[i].OwnerID != owner {
			t.Errorf("rank %d = %s, want %s", i, top[i].OwnerID, owner)
		}
	}

	top, err = svc.Leaderboard(ctx, 2)
	if err != nil {
		t.Fatalf("leaderboard limit 2: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("got %d rows, want limit 2", len(top))
	}
}

func TestDefineItemRejectsUnknownStat(t *testing.T) {
	svc := newTestService(t)
	bad := item.CatalogItem{
		ID:     "philosopher-stone",
		Name:   "Philosopher's Stone",
		Price:  999,
		Effect: item.Effect{Stat: "alchemy", Value: 1},
	}
	if err := svc.DefineItem(context.Background(), bad); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteItemCascadesInventory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustHatch(t, svc, "alice")

	if err := svc.GrantItems(ctx, "alice", "toy", 2); err != nil {
		t.Fatalf("grant: %v", err)
	}
	removed, err := svc.DeleteItem(ctx, "toy")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatal("delete reported item absent")
	}

	inv, _ := svc.ListInventory(ctx, "alice")
	if inv["toy"] != 0 {
		t.Errorf("inventory = %v, want toys cascaded away", inv)
	}

	removed, err = svc.DeleteItem(ctx, "toy")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if removed {
		t.Error("second delete reported success")
	}
}
