package engine

import (
	"errors"
	"fmt"
	"time"
)

// Domain rule violations and lookup failures. These are recoverable and
// map to reason codes at the gateway; infrastructure errors pass through
// wrapped and map to a generic retry code.
var (
	ErrNoPet             = errors.New("owner has no pet")
	ErrPetExists         = errors.New("owner already has a pet")
	ErrNotFound          = errors.New("no such stat or item")
	ErrNotOwned          = errors.New("item not in inventory")
	ErrInsufficientFunds = errors.New("not enough money")
	ErrInvalidName       = errors.New("pet name must be 1-25 characters")
	ErrEmptyCatalog      = errors.New("catalog has no items")
)

// CooldownError rejects a restorative action attempted too soon.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("on cooldown for another %s", e.Remaining.Round(time.Second))
}

// Reason codes surfaced to the command layer. The engine never renders
// user-facing text; collaborators translate these.
const (
	ReasonNoEntity          = "NO_ENTITY"
	ReasonOnCooldown        = "ON_COOLDOWN"
	ReasonInsufficientFunds = "INSUFFICIENT_FUNDS"
	ReasonNotFound          = "NOT_FOUND"
	ReasonInvalidInput      = "INVALID_INPUT"
	ReasonConflict          = "CONFLICT"
	ReasonInternal          = "INTERNAL"
)

// ReasonOf classifies an engine error into a reason code.
func ReasonOf(err error) string {
	var cd *CooldownError
	switch {
	case errors.Is(err, ErrNoPet):
		return ReasonNoEntity
	case errors.As(err, &cd):
		return ReasonOnCooldown
	case errors.Is(err, ErrInsufficientFunds):
		return ReasonInsufficientFunds
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotOwned), errors.Is(err, ErrEmptyCatalog):
		return ReasonNotFound
	case errors.Is(err, ErrInvalidName):
		return ReasonInvalidInput
	case errors.Is(err, ErrPetExists):
		return ReasonConflict
	default:
		return ReasonInternal
	}
}
