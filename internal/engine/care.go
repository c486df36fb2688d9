package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jinxed-vi/pawder-bot/internal/domain/stat"
	"github.com/jinxed-vi/pawder-bot/internal/infra/storage"
)

// Care performs a restorative action against one stat. The cooldown check,
// the mutation and the last_updated stamp happen inside one transaction, so
// two concurrent invocations of the same action cannot both pass the check:
// the store serializes transactions and the loser sees the winner's stamp.
func (s *Service) Care(ctx context.Context, ownerID, statName string, restore int) (int, error) {
	var newValue int
	err := s.store.WithTx(ctx, func(st *storage.Store) error {
		var err error
		newValue, err = s.careTx(ctx, st, ownerID, statName, restore)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Event("CARE", ownerID, fmt.Sprintf("%s restored by %d to %d", statName, restore, newValue))
	return newValue, nil
}

// careTx is the transactional body of a care action: cooldown gate, restore,
// and the vitality bonus for the attention.
func (s *Service) careTx(ctx context.Context, st *storage.Store, ownerID, statName string, restore int) (int, error) {
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

	if inst.Def.CooldownSeconds != nil && inst.LastUpdated != nil {
		cooldown := time.Duration(*inst.Def.CooldownSeconds) * time.Second
		elapsed := s.now().Sub(*inst.LastUpdated)
		if elapsed < cooldown {
			return 0, &CooldownError{Remaining: cooldown - elapsed}
		}
	}

	newValue, err := s.modifyStatTx(ctx, st, ownerID, statName, restore, stat.ModeAdd)
	if err != nil {
		return 0, err
	}

	// Looking after the pet keeps its will to stay. A deleted vitality
	// definition is tolerated; the care action itself still counts.
	if _, err := s.modifyStatTx(ctx, st, ownerID, s.vitalityStat, careWillpowerBonus, stat.ModeAdd); err != nil && !errors.Is(err, ErrNotFound) {
		return 0, fmt.Errorf("vitality bonus: %w", err)
	}
	return newValue, nil
}

// Feed restores hunger.
func (s *Service) Feed(ctx context.Context, ownerID string) (int, error) {
	return s.Care(ctx, ownerID, StatHunger, feedRestore)
}

// Play restores happiness and earns the owner a small random amount of
// coins. Restore and reward commit together: a failed coin grant rolls
// the care effect back too.
func (s *Service) Play(ctx context.Context, ownerID string) (value int, coins int, err error) {
	coins = playRewardMin + s.rand.Intn(playRewardMax-playRewardMin+1)

	err = s.store.WithTx(ctx, func(st *storage.Store) error {
		var err error
		value, err = s.careTx(ctx, st, ownerID, StatHappiness, playRestore)
		if err != nil {
			return err
		}
		if _, err := s.modifyStatTx(ctx, st, ownerID, StatMoney, coins, stat.ModeAdd); err != nil {
			return fmt.Errorf("play reward: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	s.logger.Event("CARE", ownerID, fmt.Sprintf("%s restored by %d to %d, %d coins earned", StatHappiness, playRestore, value, coins))
	return value, coins, nil
}

// Clean restores cleanliness.
func (s *Service) Clean(ctx context.Context, ownerID string) (int, error) {
	return s.Care(ctx, ownerID, StatCleanliness, cleanRestore)
}
