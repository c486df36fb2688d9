package network

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jinxed-vi/pawder-bot/internal/domain/item"
	"github.com/jinxed-vi/pawder-bot/internal/domain/stat"
	"github.com/jinxed-vi/pawder-bot/internal/engine"
	"github.com/jinxed-vi/pawder-bot/internal/platform/logger"
	"github.com/jinxed-vi/pawder-bot/internal/platform/metrics"
)

// HandlerFunc executes one command for one owner and returns its payload.
type HandlerFunc func(ctx context.Context, ownerID string, args json.RawMessage) (interface{}, error)

// Gateway is a plain registry of command name to handler. Authentication
// and authorization (who may issue admin commands) belong to the chat
// transport, not here.
type Gateway struct {
	svc      *engine.Service
	logger   *logger.Logger
	metrics  *metrics.Collector
	handlers map[string]HandlerFunc
}

// NewGateway registers every engine operation under its command name.
func NewGateway(svc *engine.Service, log *logger.Logger) *Gateway {
	g := &Gateway{
		svc:     svc,
		logger:  log,
		metrics: metrics.Get(),
	}
	g.handlers = map[string]HandlerFunc{
		"hatch":       g.handleHatch,
		"name":        g.handleRename,
		"status":      g.handleStatus,
		"feed":        g.handleFeed,
		"play":        g.handlePlay,
		"clean":       g.handleClean,
		"shop":        g.handleShop,
		"buy":         g.handleBuy,
		"use":         g.handleUse,
		"inventory":   g.handleInventory,
		"prize":       g.handlePrize,
		"leaderboard": g.handleLeaderboard,

		// Admin surface; the transport gates access.
		"definestat": g.handleDefineStat,
		"deletestat": g.handleDeleteStat,
		"defineitem": g.handleDefineItem,
		"deleteitem": g.handleDeleteItem,
		"grant":      g.handleGrant,
		"revoke":     g.handleRevoke,
	}
	return g
}

// Dispatch routes one command to its handler and wraps the outcome.
func (g *Gateway) Dispatch(ctx context.Context, cmd Command) Response {
	handler, ok := g.handlers[cmd.Name]
	if !ok {
		g.metrics.RecordCommand(true)
		return Response{ID: cmd.ID, OK: false, Reason: engine.ReasonNotFound}
	}

	payload, err := handler(ctx, cmd.OwnerID, cmd.Args)
	if err != nil {
		g.metrics.RecordCommand(true)
		resp := Response{ID: cmd.ID, OK: false, Reason: engine.ReasonOf(err)}
		var cd *engine.CooldownError
		if errors.As(err, &cd) {
			resp.RetryAfter = cd.Remaining.Round(time.Second).String()
		}
		if resp.Reason == engine.ReasonInternal {
			g.logger.Errorf("command %q for %s: %v", cmd.Name, cmd.OwnerID, err)
		}
		return resp
	}

	g.metrics.RecordCommand(false)
	return Response{ID: cmd.ID, OK: true, Payload: payload}
}

func (g *Gateway) handleHatch(ctx context.Context, ownerID string, _ json.RawMessage) (interface{}, error) {
	if err := g.svc.Hatch(ctx, ownerID); err != nil {
		return nil, err
	}
	return map[string]bool{"hatched": true}, nil
}

func (g *Gateway) handleRename(ctx context.Context, ownerID string, args json.RawMessage) (interface{}, error) {
	var a struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, engine.ErrInvalidName
	}
	if err := g.svc.Rename(ctx, ownerID, a.Name); err != nil {
		return nil, err
	}
	return map[string]string{"name": a.Name}, nil
}

func (g *Gateway) handleStatus(ctx context.Context, ownerID string, _ json.RawMessage) (interface{}, error) {
	return g.svc.Status(ctx, ownerID)
}

func (g *Gateway) handleFeed(ctx context.Context, ownerID string, _ json.RawMessage) (interface{}, error) {
	value, err := g.svc.Feed(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return map[string]int{"hunger": value}, nil
}

func (g *Gateway) handlePlay(ctx context.Context, ownerID string, _ json.RawMessage) (interface{}, error) {
	value, coins, err := g.svc.Play(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return map[string]int{"happiness": value, "coins_earned": coins}, nil
}

func (g *Gateway) handleClean(ctx context.Context, ownerID string, _ json.RawMessage) (interface{}, error) {
	value, err := g.svc.Clean(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return map[string]int{"cleanliness": value}, nil
}

func (g *Gateway) handleShop(ctx context.Context, _ string, _ json.RawMessage) (interface{}, error) {
	return g.svc.Shop(ctx)
}

type itemArgs struct {
	ItemID string `json:"item_id"`
}

func (g *Gateway) handleBuy(ctx context.Context, ownerID string, args json.RawMessage) (interface{}, error) {
	var a itemArgs
	if err := json.Unmarshal(args, &a); err != nil || a.ItemID == "" {
		return nil, engine.ErrNotFound
	}
	if err := g.svc.Purchase(ctx, ownerID, a.ItemID); err != nil {
		return nil, err
	}
	return map[string]string{"item_id": a.ItemID}, nil
}

func (g *Gateway) handleUse(ctx context.Context, ownerID string, args json.RawMessage) (interface{}, error) {
	var a itemArgs
	if err := json.Unmarshal(args, &a); err != nil || a.ItemID == "" {
		return nil, engine.ErrNotFound
	}
	value, err := g.svc.UseItem(ctx, ownerID, a.ItemID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"item_id": a.ItemID, "new_value": value}, nil
}

func (g *Gateway) handleInventory(ctx context.Context, ownerID string, _ json.RawMessage) (interface{}, error) {
	return g.svc.ListInventory(ctx, ownerID)
}

func (g *Gateway) handlePrize(ctx context.Context, ownerID string, _ json.RawMessage) (interface{}, error) {
	won, err := g.svc.ClaimPrize(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return won, nil
}

func (g *Gateway) handleLeaderboard(ctx context.Context, _ string, args json.RawMessage) (interface{}, error) {
	var a struct {
		Limit int `json:"limit"`
	}
	if len(args) > 0 {
		_ = json.Unmarshal(args, &a)
	}
	return g.svc.Leaderboard(ctx, a.Limit)
}

func (g *Gateway) handleDefineStat(ctx context.Context, _ string, args json.RawMessage) (interface{}, error) {
	var def stat.Definition
	if err := json.Unmarshal(args, &def); err != nil || def.Name == "" {
		return nil, engine.ErrNotFound
	}
	backfilled, err := g.svc.DefineStat(ctx, def)
	if err != nil {
		return nil, err
	}
	return map[string]int{"backfilled": backfilled}, nil
}

func (g *Gateway) handleDeleteStat(ctx context.Context, _ string, args json.RawMessage) (interface{}, error) {
	var a struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(args, &a); err != nil || a.Name == "" {
		return nil, engine.ErrNotFound
	}
	removed, err := g.svc.DeleteStat(ctx, a.Name)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, engine.ErrNotFound
	}
	return map[string]bool{"removed": true}, nil
}

func (g *Gateway) handleDefineItem(ctx context.Context, _ string, args json.RawMessage) (interface{}, error) {
	var it item.CatalogItem
	if err := json.Unmarshal(args, &it); err != nil || it.ID == "" {
		return nil, engine.ErrNotFound
	}
	if err := g.svc.DefineItem(ctx, it); err != nil {
		return nil, err
	}
	return map[string]string{"item_id": it.ID}, nil
}

func (g *Gateway) handleDeleteItem(ctx context.Context, _ string, args json.RawMessage) (interface{}, error) {
	var a itemArgs
	if err := json.Unmarshal(args, &a); err != nil || a.ItemID == "" {
		return nil, engine.ErrNotFound
	}
	removed, err := g.svc.DeleteItem(ctx, a.ItemID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, engine.ErrNotFound
	}
	return map[string]bool{"removed": true}, nil
}

type grantArgs struct {
	OwnerID  string `json:"owner_id"`
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func (g *Gateway) handleGrant(ctx context.Context, _ string, args json.RawMessage) (interface{}, error) {
	var a grantArgs
	if err := json.Unmarshal(args, &a); err != nil || a.ItemID == "" || a.OwnerID == "" {
		return nil, engine.ErrNotFound
	}
	if a.Quantity == 0 {
		a.Quantity = 1
	}
	if err := g.svc.GrantItems(ctx, a.OwnerID, a.ItemID, a.Quantity); err != nil {
		return nil, err
	}
	return map[string]int{"granted": a.Quantity}, nil
}

func (g *Gateway) handleRevoke(ctx context.Context, _ string, args json.RawMessage) (interface{}, error) {
	var a grantArgs
	if err := json.Unmarshal(args, &a); err != nil || a.ItemID == "" || a.OwnerID == "" {
		return nil, engine.ErrNotFound
	}
	if a.Quantity == 0 {
		a.Quantity = 1
	}
	if err := g.svc.RevokeItems(ctx, a.OwnerID, a.ItemID, a.Quantity); err != nil {
		return nil, err
	}
	return map[string]int{"revoked": a.Quantity}, nil
}
