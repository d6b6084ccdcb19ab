// Package shop runs the rotating card store: timed listing refreshes,
// floating listing motion and the purchase flow against the ledger.
package shop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/cosmogen/cosmogenesis/internal/catalog"
	"github.com/cosmogen/cosmogenesis/internal/domain"
	"github.com/cosmogen/cosmogenesis/internal/ledger"
	"github.com/cosmogen/cosmogenesis/internal/logger"
	"github.com/cosmogen/cosmogenesis/internal/metrics"
	"github.com/cosmogen/cosmogenesis/internal/storage"
)

// Service is the shop API surface used by the facade and the scheduler.
type Service interface {
	Snapshot() domain.ShopState
	Tick(ctx context.Context)
	RefreshPlanets(ctx context.Context)
	RefreshSun(ctx context.Context)
	Purchase(ctx context.Context, instanceID string) (domain.InventoryCard, error)
	PlanetRefreshIn() time.Duration
	SunRefreshIn() time.Duration
	Drift(ctx context.Context)
}

type service struct {
	mu      sync.Mutex
	state   domain.ShopState
	store   storage.Store
	catalog catalog.Provider
	ledger  ledger.Service
	clock   clockwork.Clock
	rnd     func() float64
}

// New restores the shop from the store and immediately fills any empty or
// stale pool so the first snapshot always has stock. rnd must return values
// in [0, 1).
func New(ctx context.Context, store storage.Store, cat catalog.Provider, led ledger.Service, clock clockwork.Clock, rnd func() float64) Service {
	var state domain.ShopState
	found, err := storage.LoadJSON(ctx, store, storage.KeyShopUniverse, &state)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to load shop state, starting fresh", "error", err)
	}
	if !found {
		state = domain.ShopState{Planets: []domain.ShopListing{}}
	}

	s := &service{state: state, store: store, catalog: cat, ledger: led, clock: clock, rnd: rnd}
	s.Tick(ctx)
	return s
}

// Snapshot returns a copy of the current shop stock.
func (s *service) Snapshot() domain.ShopState {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	snap.Planets = append([]domain.ShopListing{}, s.state.Planets...)
	if s.state.Sun != nil {
		sun := *s.state.Sun
		snap.Sun = &sun
	}
	return snap
}

// Tick refreshes whichever pools are empty or past their interval. Calling
// it early is a no-op; the gates are pure functions of the clock.
func (s *service) Tick(ctx context.Context) {
	s.mu.Lock()
	now := s.clock.Now()
	planetsDue := len(s.state.Planets) == 0 || now.Sub(s.state.LastPlanetRefresh) > domain.PlanetRefreshInterval
	sunDue := s.state.Sun == nil || now.Sub(s.state.LastSunRefresh) > domain.SunRefreshInterval
	s.mu.Unlock()

	if planetsDue {
		s.RefreshPlanets(ctx)
	}
	if sunDue {
		s.RefreshSun(ctx)
	}
}

// RefreshPlanets discards the planet pool and rolls 6 to 10 new listings.
// Unpurchased stock does not carry over.
func (s *service) RefreshPlanets(ctx context.Context) {
	pool := s.catalog.Planets()
	if len(pool) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	count := domain.MinShopPlanets + int(s.rnd()*float64(domain.MaxShopPlanets-domain.MinShopPlanets+1))
	listings := make([]domain.ShopListing, 0, count)
	for i := 0; i < count; i++ {
		archetype := pool[int(s.rnd()*float64(len(pool)))]
		listings = append(listings, domain.ShopListing{
			InstanceID:     uuid.NewString(),
			ArchetypeID:    archetype.ID,
			Name:           archetype.Name,
			Subtype:        archetype.Subtype,
			Rarity:         archetype.Rarity,
			Power:          archetype.Power,
			Color:          archetype.Color,
			X:              20 + s.rnd()*60,
			Y:              20 + s.rnd()*60,
			Size:           40 + s.rnd()*30,
			Price:          domain.PriceForRarity(archetype.Rarity),
			FloatSpeed:     0.2 + s.rnd()*0.8,
			FloatDirection: s.rnd() * 360,
		})
	}
	s.state.Planets = listings
	s.state.LastPlanetRefresh = s.clock.Now()
	s.persist(ctx)
	metrics.ShopRefreshes.WithLabelValues("planets").Inc()
	logger.FromContext(ctx).Info("planet pool refreshed", "count", count)
}

// RefreshSun rolls a single new sun listing at double the rarity price.
func (s *service) RefreshSun(ctx context.Context) {
	pool := s.catalog.Suns()
	if len(pool) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	archetype := pool[int(s.rnd()*float64(len(pool)))]
	s.state.Sun = &domain.ShopListing{
		InstanceID:     uuid.NewString(),
		ArchetypeID:    archetype.ID,
		Name:           archetype.Name,
		Subtype:        archetype.Subtype,
		Rarity:         archetype.Rarity,
		Power:          archetype.Power,
		Color:          archetype.Color,
		X:              30 + s.rnd()*40,
		Y:              30 + s.rnd()*40,
		Size:           70 + s.rnd()*30,
		Price:          domain.PriceForRarity(archetype.Rarity) * 2,
		FloatSpeed:     0.1 + s.rnd()*0.3,
		FloatDirection: s.rnd() * 360,
	}
	s.state.LastSunRefresh = s.clock.Now()
	s.persist(ctx)
	metrics.ShopRefreshes.WithLabelValues("sun").Inc()
	logger.FromContext(ctx).Info("sun listing refreshed", "archetype", archetype.ID)
}

// Purchase spends the listing price and delivers the card to the player's
// inventory. If delivery fails after payment the price is refunded.
func (s *service) Purchase(ctx context.Context, instanceID string) (domain.InventoryCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A missing listing and an already-bought one read the same to the
	// buyer: the card is gone from the storefront.
	listing := s.findListing(instanceID)
	if listing == nil || listing.Purchased {
		return domain.InventoryCard{}, fmt.Errorf("%w: listing %s", domain.ErrAlreadyPurchased, instanceID)
	}

	price := float64(listing.Price)
	if err := s.ledger.SpendChronos(ctx, price); err != nil {
		return domain.InventoryCard{}, err
	}
	card, err := s.ledger.AddCardToInventory(ctx, listing.ArchetypeID)
	if err != nil {
		s.ledger.AddChronos(ctx, price)
		return domain.InventoryCard{}, fmt.Errorf("deliver %s: %w", listing.ArchetypeID, err)
	}

	listing.Purchased = true
	s.persist(ctx)
	metrics.ListingsPurchased.WithLabelValues(listing.ArchetypeID).Inc()
	metrics.ChronosSpent.Add(price)
	logger.FromContext(ctx).Info("listing purchased",
		"archetype", listing.ArchetypeID, "price", listing.Price)
	return card, nil
}

// PlanetRefreshIn reports the time until the next planet rotation.
func (s *service) PlanetRefreshIn() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remaining(s.state.LastPlanetRefresh, domain.PlanetRefreshInterval, s.clock.Now())
}

// SunRefreshIn reports the time until the next sun rotation.
func (s *service) SunRefreshIn() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remaining(s.state.LastSunRefresh, domain.SunRefreshInterval, s.clock.Now())
}

// Drift advances every unpurchased listing one animation step. Purchased
// listings hold still until the next refresh discards them.
func (s *service) Drift(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Planets {
		if s.state.Planets[i].Purchased {
			continue
		}
		advance(&s.state.Planets[i], s.rnd)
	}
	if s.state.Sun != nil && !s.state.Sun.Purchased {
		advance(s.state.Sun, s.rnd)
	}
}

// findListing returns a pointer into the live state. Callers must hold s.mu.
func (s *service) findListing(instanceID string) *domain.ShopListing {
	for i := range s.state.Planets {
		if s.state.Planets[i].InstanceID == instanceID {
			return &s.state.Planets[i]
		}
	}
	if s.state.Sun != nil && s.state.Sun.InstanceID == instanceID {
		return s.state.Sun
	}
	return nil
}

// persist writes the shop state through the store. Callers must hold s.mu.
func (s *service) persist(ctx context.Context) {
	if err := storage.SaveJSON(ctx, s.store, storage.KeyShopUniverse, s.state); err != nil {
		logger.FromContext(ctx).Warn("shop save failed", "error", err)
	}
}

func remaining(last time.Time, interval time.Duration, now time.Time) time.Duration {
	left := last.Add(interval).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}
