package engine

import (
	"context"
	"time"

	"github.com/jinxed-vi/pawder-bot/internal/domain/stat"
	"github.com/jinxed-vi/pawder-bot/internal/infra/storage"
)

// ModifyStat applies one mutation to one (owner, stat) pair: the value is
// clamped to [0, cap] (floor 0 always, ceiling only when the definition has
// a cap) and persisted. last_updated is stamped only when the net effect
// increases the value, so penalties and decay never feed the cooldown clock.
//
// Returns ErrNotFound when the stat name is not defined and ErrNoPet when
// the owner has no instance of it.
func (s *Service) ModifyStat(ctx context.Context, ownerID, statName string, amount int, mode stat.Mode) (int, error) {
	var newValue int
	err := s.store.WithTx(ctx, func(st *storage.Store) error {
		var err error
		newValue, err = s.modifyStatTx(ctx, st, ownerID, statName, amount, mode)
		return err
	})
	return newValue, err
}

// modifyStatTx is the single write path for stat values. It must run
// inside a transaction so the read-clamp-write sequence is atomic.
func (s *Service) modifyStatTx(ctx context.Context, st *storage.Store, ownerID, statName string, amount int, mode stat.Mode) (int, error) {
	inst, err := st.GetStatInstance(ctx, ownerID, statName)
	if err != nil {
		return 0, err
	}
	if inst == nil {
		def, err := st.GetDefinition(ctx, statName)
		if err != nil {
			return 0, err
		}
		if def == nil {
			return 0, ErrNotFound
		}
		return 0, ErrNoPet
	}

	newValue := inst.Def.Apply(inst.Value, amount, mode)

	var stamp *time.Time
	if newValue > inst.Value {
		t := s.now()
		stamp = &t
	}

	if err := st.UpdateStatValue(ctx, ownerID, inst.Def.ID, newValue, stamp); err != nil {
		return 0, err
	}
	return newValue, nil
}
