// Package universe owns the placed sun, the orbit slot grid and the
// derived stat and income pipeline built on top of them.
package universe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cosmogen/cosmogenesis/internal/domain"
	"github.com/cosmogen/cosmogenesis/internal/ledger"
	"github.com/cosmogen/cosmogenesis/internal/logger"
	"github.com/cosmogen/cosmogenesis/internal/metrics"
	"github.com/cosmogen/cosmogenesis/internal/storage"
)

// Service is the placement engine API used by the facade and scheduler.
type Service interface {
	Snapshot() domain.UniverseState
	PlaceSun(ctx context.Context, inventoryID string) error
	PlacePlanet(ctx context.Context, inventoryID string, orbit, slot int) error
	RemovePlanet(ctx context.Context, orbit, slot int) error
	Clear(ctx context.Context)
	IncomeRate() float64
	Accrue(ctx context.Context)
	SetIncomeBoost(boost func(now time.Time) float64)
}

type service struct {
	mu     sync.Mutex
	state  domain.UniverseState
	store  storage.Store
	ledger ledger.Service
	clock  clockwork.Clock

	// Raw (unrounded) income rate and the accrual accumulator.
	rate           float64
	lastIncomeTime int64 // unix milliseconds
	accumulated    float64

	// boost, when set, scales each credit by 1 + boost(now).
	boost func(now time.Time) float64
}

// Load restores the universe from the store, degrading to an empty system
// when no save exists or the save is corrupted.
func Load(ctx context.Context, store storage.Store, led ledger.Service, clock clockwork.Clock, baseRate float64) Service {
	state := domain.NewUniverseState(baseRate)
	found, err := storage.LoadJSON(ctx, store, storage.KeyUniverse, &state)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptedState) {
			logger.FromContext(ctx).Warn("universe save corrupted, starting empty", "error", err)
		} else {
			logger.FromContext(ctx).Warn("failed to load universe save", "error", err)
		}
		state = domain.NewUniverseState(baseRate)
	}
	if !found {
		state = domain.NewUniverseState(baseRate)
	}
	if state.Planets == nil {
		state.Planets = map[string]domain.PlacedPlanet{}
	}
	state.Income.BaseRate = baseRate

	s := &service{
		state:          state,
		store:          store,
		ledger:         led,
		clock:          clock,
		lastIncomeTime: clock.Now().UnixMilli(),
	}
	s.mu.Lock()
	s.recompute(ctx)
	s.mu.Unlock()
	return s
}

// Snapshot returns a copy of the placement state and its derived totals.
func (s *service) Snapshot() domain.UniverseState {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	snap.Planets = make(map[string]domain.PlacedPlanet, len(s.state.Planets))
	for k, v := range s.state.Planets {
		snap.Planets[k] = v
	}
	if s.state.Sun != nil {
		sun := *s.state.Sun
		snap.Sun = &sun
	}
	return snap
}

// PlaceSun consumes the inventory card and installs it as the system sun,
// overwriting any current sun. The replaced sun is discarded.
func (s *service) PlaceSun(ctx context.Context, inventoryID string) error {
	card, err := s.ledger.UseCardFromInventory(ctx, inventoryID)
	if err != nil {
		return err
	}
	if card.CardArchetype.Category != domain.CategorySun {
		// Put the card back; it was consumed optimistically.
		s.restoreCard(ctx, card.CardArchetype.ID)
		return fmt.Errorf("%w: %s is not a sun", domain.ErrUnknownArchetype, card.CardArchetype.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	archetype := card.CardArchetype
	s.state.Sun = &archetype
	s.recompute(ctx)
	s.persist(ctx)
	logger.FromContext(ctx).Info("sun placed", "archetype", archetype.ID)
	return nil
}

// PlacePlanet consumes the inventory card and places it at orbit/slot.
// The orbit must be unlocked and the slot addressable; an occupied slot is
// overwritten and the previous occupant discarded.
func (s *service) PlacePlanet(ctx context.Context, inventoryID string, orbit, slot int) error {
	if !s.ledger.IsOrbitUnlocked(orbit) {
		return fmt.Errorf("%w: orbit %d", domain.ErrOrbitLocked, orbit)
	}
	if !domain.ValidSlot(orbit, slot) {
		return fmt.Errorf("%w: orbit %d slot %d", domain.ErrInvalidSlot, orbit, slot)
	}

	card, err := s.ledger.UseCardFromInventory(ctx, inventoryID)
	if err != nil {
		return err
	}
	if card.CardArchetype.Category != domain.CategoryPlanet {
		s.restoreCard(ctx, card.CardArchetype.ID)
		return fmt.Errorf("%w: %s is not a planet", domain.ErrUnknownArchetype, card.CardArchetype.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Planets[domain.SlotKey(orbit, slot)] = domain.PlacedPlanet{
		CardArchetype: card.CardArchetype,
		InventoryID:   card.InventoryID,
		Orbit:         orbit,
		Slot:          slot,
	}
	s.recompute(ctx)
	s.persist(ctx)
	metrics.PlanetsPlaced.WithLabelValues(card.CardArchetype.ID).Inc()
	logger.FromContext(ctx).Info("planet placed",
		"archetype", card.CardArchetype.ID, "orbit", orbit, "slot", slot)
	return nil
}

// RemovePlanet clears the slot. The removed planet is discarded, not
// returned to inventory.
func (s *service) RemovePlanet(ctx context.Context, orbit, slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := domain.SlotKey(orbit, slot)
	if _, ok := s.state.Planets[key]; !ok {
		return fmt.Errorf("%w: orbit %d slot %d", domain.ErrCardNotFound, orbit, slot)
	}
	delete(s.state.Planets, key)
	s.recompute(ctx)
	s.persist(ctx)
	return nil
}

// Clear wipes the whole system back to an empty universe.
func (s *service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	baseRate := s.state.Income.BaseRate
	s.state = domain.NewUniverseState(baseRate)
	s.recompute(ctx)
	s.persist(ctx)
	logger.FromContext(ctx).Info("universe cleared")
}

// IncomeRate returns the current raw chronos-per-minute rate.
func (s *service) IncomeRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rate
}

// Accrue advances the elapsed-time accumulator and credits the ledger once
// at least one whole second has accumulated. Crediting is proportional to
// wall-clock time, so delayed or throttled ticks catch up instead of
// losing income.
func (s *service) Accrue(ctx context.Context) {
	s.mu.Lock()
	now := s.clock.Now().UnixMilli()
	s.accumulated += float64(now-s.lastIncomeTime) / 1000
	s.lastIncomeTime = now

	if s.accumulated < 1 {
		s.mu.Unlock()
		return
	}
	earned := s.rate / 60 * s.accumulated
	if s.boost != nil {
		earned *= 1 + s.boost(s.clock.Now())
	}
	amount := math.Round(earned*100) / 100
	s.accumulated = 0
	s.mu.Unlock()

	if amount >= 0.01 {
		s.ledger.AddChronos(ctx, amount)
		metrics.ChronosEarned.Add(amount)
	}
}

// SetIncomeBoost installs an accrual multiplier source, typically the
// active booster chronos boost. A nil boost disables scaling.
func (s *service) SetIncomeBoost(boost func(now time.Time) float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boost = boost
}

// restoreCard re-adds an archetype after an optimistic inventory
// consumption that could not be placed.
func (s *service) restoreCard(ctx context.Context, archetypeID string) {
	if _, err := s.ledger.AddCardToInventory(ctx, archetypeID); err != nil {
		logger.FromContext(ctx).Warn("failed to restore card after rejected placement",
			"archetype", archetypeID, "error", err)
	}
}

// recompute rebuilds every derived field from the placements and mirrors
// display stats into the ledger. Callers must hold s.mu.
func (s *service) recompute(ctx context.Context) {
	var totalPower float64
	bonuses := domain.Bonuses{}

	if s.state.Sun != nil {
		totalPower += s.state.Sun.Power
		bonuses = bonuses.Add(s.state.Sun.Bonuses)
	}
	for _, p := range s.state.Planets {
		totalPower += p.Power
		bonuses = bonuses.Add(p.Bonuses)
	}

	// Balance collapses into a composite of all three dimensions. Card
	// balance contributions are part of the sum before the overwrite.
	composite := math.Round(float64(bonuses.Stability+bonuses.Energy+bonuses.Balance) / 3)
	bonuses.Balance = int(composite)

	s.state.TotalPower = totalPower
	s.state.Bonuses = bonuses
	s.state.Income, s.rate = computeIncome(s.state.Income.BaseRate, s.state.Sun, s.state.Planets, bonuses)
	s.state.LastSaveTime = s.clock.Now()

	s.ledger.SetSystemStats(ctx, totalPower, len(s.state.Planets))
}

// persist writes the universe state through the store. Callers must hold s.mu.
func (s *service) persist(ctx context.Context) {
	if err := storage.SaveJSON(ctx, s.store, storage.KeyUniverse, s.state); err != nil {
		logger.FromContext(ctx).Warn("universe save failed", "error", err)
	}
}
