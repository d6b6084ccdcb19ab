// Package ledger owns the player's persisted state: currency, inventory,
// unlocked orbits, boosters and completed missions. All mutation goes
// through the service, and every mutation persists the whole state.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/cosmogen/cosmogenesis/internal/catalog"
	"github.com/cosmogen/cosmogenesis/internal/domain"
	"github.com/cosmogen/cosmogenesis/internal/logger"
	"github.com/cosmogen/cosmogenesis/internal/storage"
)

// Service defines the ledger operations other components depend on.
type Service interface {
	Balance() float64
	SpendChronos(ctx context.Context, amount float64) error
	AddChronos(ctx context.Context, amount float64) float64

	AddCardToInventory(ctx context.Context, archetypeID string) (domain.InventoryCard, error)
	UseCardFromInventory(ctx context.Context, inventoryID string) (*domain.InventoryCard, error)
	Inventory() []domain.InventoryCard

	UnlockOrbit(ctx context.Context, orbit int) error
	IsOrbitUnlocked(orbit int) bool

	AddBooster(ctx context.Context, boosterID string, durationHours int)
	ActiveBoosters() []domain.ActiveBooster

	CompleteMission(ctx context.Context, missionID string)
	IsMissionCompleted(missionID string) bool

	SetSystemStats(ctx context.Context, power float64, planets int)
	Snapshot() domain.PlayerState
	Reset(ctx context.Context)
}

type service struct {
	mu      sync.Mutex
	state   domain.PlayerState
	store   storage.Store
	catalog catalog.Provider
	clock   clockwork.Clock
}

// Load restores the player state from the store, degrading to defaults when
// no save exists or the save is corrupted (the corrupt payload is backed up
// by the storage layer before defaults are used).
func Load(ctx context.Context, store storage.Store, cat catalog.Provider, clock clockwork.Clock) Service {
	state := domain.NewPlayerState()
	found, err := storage.LoadJSON(ctx, store, storage.KeyPlayerData, &state)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptedState) {
			logger.FromContext(ctx).Warn("player save corrupted, starting fresh", "error", err)
			state = domain.NewPlayerState()
		} else {
			logger.FromContext(ctx).Warn("failed to load player save", "error", err)
		}
	}
	if !found {
		state = domain.NewPlayerState()
	}
	s := &service{state: state, store: store, catalog: cat, clock: clock}
	if errors.Is(err, domain.ErrCorruptedState) {
		s.mu.Lock()
		s.persist(ctx)
		s.mu.Unlock()
	}
	return s
}

// Balance returns the current chronos balance.
func (s *service) Balance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Chronos
}

// SpendChronos deducts amount iff the balance covers it. The deduction is
// atomic: on failure the balance is untouched.
func (s *service) SpendChronos(ctx context.Context, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount > s.state.Chronos {
		return fmt.Errorf("%w: need %.2f, have %.2f", domain.ErrInsufficientFunds, amount, s.state.Chronos)
	}
	s.state.Chronos = round2(s.state.Chronos - amount)
	s.persist(ctx)
	return nil
}

// AddChronos credits amount unconditionally and returns the new balance.
func (s *service) AddChronos(ctx context.Context, amount float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Chronos = round2(s.state.Chronos + amount)
	s.persist(ctx)
	return s.state.Chronos
}

// AddCardToInventory appends a fresh inventory instance of the archetype.
func (s *service) AddCardToInventory(ctx context.Context, archetypeID string) (domain.InventoryCard, error) {
	archetype, ok := s.catalog.FindByID(archetypeID)
	if !ok {
		return domain.InventoryCard{}, fmt.Errorf("%w: %s", domain.ErrUnknownArchetype, archetypeID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	card := domain.InventoryCard{
		CardArchetype: archetype,
		InventoryID:   uuid.NewString(),
		ObtainedAt:    s.clock.Now(),
	}
	s.state.Inventory = append(s.state.Inventory, card)
	s.persist(ctx)
	return card, nil
}

// UseCardFromInventory removes and returns the matching card. Removal is
// idempotent: a second call with the same id fails with ErrCardNotFound.
func (s *service) UseCardFromInventory(ctx context.Context, inventoryID string) (*domain.InventoryCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, card := range s.state.Inventory {
		if card.InventoryID == inventoryID {
			s.state.Inventory = append(s.state.Inventory[:i], s.state.Inventory[i+1:]...)
			s.persist(ctx)
			return &card, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrCardNotFound, inventoryID)
}

// Inventory returns a copy of the owned cards in acquisition order.
func (s *service) Inventory() []domain.InventoryCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.InventoryCard, len(s.state.Inventory))
	copy(out, s.state.Inventory)
	return out
}

// UnlockOrbit adds the orbit to the unlocked set. Unlocking an already
// unlocked orbit fails without mutating state.
func (s *service) UnlockOrbit(ctx context.Context, orbit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, unlocked := range s.state.UnlockedOrbits {
		if unlocked == orbit {
			return fmt.Errorf("%w: orbit %d", domain.ErrOrbitUnlocked, orbit)
		}
	}
	s.state.UnlockedOrbits = append(s.state.UnlockedOrbits, orbit)
	s.persist(ctx)
	return nil
}

// IsOrbitUnlocked is a pure query against the unlocked set.
func (s *service) IsOrbitUnlocked(orbit int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, unlocked := range s.state.UnlockedOrbits {
		if unlocked == orbit {
			return true
		}
	}
	return false
}

// AddBooster appends an active booster entry. Expired entries are never
// pruned here; reads filter by remaining time instead.
func (s *service) AddBooster(ctx context.Context, boosterID string, durationHours int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveBoosters = append(s.state.ActiveBoosters, domain.ActiveBooster{
		BoosterID:   boosterID,
		ActivatedAt: s.clock.Now(),
		Duration:    domain.DurationToMillis(time.Duration(durationHours) * time.Hour),
	})
	s.persist(ctx)
}

// ActiveBoosters returns the boosters with remaining time at this instant.
func (s *service) ActiveBoosters() []domain.ActiveBooster {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	var active []domain.ActiveBooster
	for _, booster := range s.state.ActiveBoosters {
		if booster.Active(now) {
			active = append(active, booster)
		}
	}
	return active
}

// CompleteMission records a mission as done. Completion is permanent.
func (s *service) CompleteMission(ctx context.Context, missionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, done := range s.state.CompletedMissions {
		if done == missionID {
			return
		}
	}
	s.state.CompletedMissions = append(s.state.CompletedMissions, missionID)
	s.persist(ctx)
}

// IsMissionCompleted is a pure query against the completed set.
func (s *service) IsMissionCompleted(missionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, done := range s.state.CompletedMissions {
		if done == missionID {
			return true
		}
	}
	return false
}

// SetSystemStats mirrors the placement engine's derived display stats.
func (s *service) SetSystemStats(ctx context.Context, power float64, planets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SystemPower = power
	s.state.PlanetsCount = planets
	s.persist(ctx)
}

// Snapshot returns a copy of the whole player state for rendering.
func (s *service) Snapshot() domain.PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	snap.Inventory = append([]domain.InventoryCard{}, s.state.Inventory...)
	snap.UnlockedOrbits = append([]int{}, s.state.UnlockedOrbits...)
	snap.ActiveBoosters = append([]domain.ActiveBooster{}, s.state.ActiveBoosters...)
	snap.CompletedMissions = append([]string{}, s.state.CompletedMissions...)
	return snap
}

// Reset overwrites the whole state with first-launch defaults.
func (s *service) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.NewPlayerState()
	s.persist(ctx)
}

// persist writes the state through the store. Failures are logged and
// swallowed: the in-memory state stays authoritative for the session.
// Callers must hold s.mu.
func (s *service) persist(ctx context.Context) {
	if err := storage.SaveJSON(ctx, s.store, storage.KeyPlayerData, s.state); err != nil {
		logger.FromContext(ctx).Warn("player save failed", "error", err)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
