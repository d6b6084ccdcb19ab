package shop

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmogen/cosmogenesis/internal/catalog"
	"github.com/cosmogen/cosmogenesis/internal/domain"
	"github.com/cosmogen/cosmogenesis/internal/ledger"
	"github.com/cosmogen/cosmogenesis/internal/storage"
)

// fixedRnd always returns the same value, making roll counts deterministic.
func fixedRnd(v float64) func() float64 {
	return func() float64 { return v }
}

func newTestShop(t *testing.T, rnd func() float64) (Service, ledger.Service, *storage.MemoryStore, *clockwork.FakeClock) {
	t.Helper()
	store := storage.NewMemoryStore()
	cat, err := catalog.New(catalog.DefaultSuns(), catalog.DefaultPlanets())
	require.NoError(t, err)
	clock := clockwork.NewFakeClock()
	led := ledger.Load(context.Background(), store, cat, clock)
	return New(context.Background(), store, cat, led, clock, rnd), led, store, clock
}

func TestNewFillsEmptyShop(t *testing.T) {
	svc, _, _, _ := newTestShop(t, fixedRnd(0))

	snap := svc.Snapshot()
	require.NotNil(t, snap.Sun)
	assert.Len(t, snap.Planets, domain.MinShopPlanets, "rnd=0 rolls the minimum pool")
	for _, listing := range snap.Planets {
		assert.NotEmpty(t, listing.InstanceID)
		assert.False(t, listing.Purchased)
		assert.GreaterOrEqual(t, listing.X, 20.0)
		assert.LessOrEqual(t, listing.X, 80.0)
	}
}

func TestRefreshPlanetsPoolSize(t *testing.T) {
	svc, _, _, _ := newTestShop(t, fixedRnd(0.999))

	snap := svc.Snapshot()
	assert.Len(t, snap.Planets, domain.MaxShopPlanets, "rnd near 1 rolls the maximum pool")
}

func TestSunPriceDoubled(t *testing.T) {
	svc, _, _, _ := newTestShop(t, fixedRnd(0))

	sun := svc.Snapshot().Sun
	require.NotNil(t, sun)
	assert.Equal(t, domain.PriceForRarity(sun.Rarity)*2, sun.Price)
}

func TestTickGates(t *testing.T) {
	svc, _, _, clock := newTestShop(t, fixedRnd(0))

	before := svc.Snapshot()
	clock.Advance(14 * time.Minute)
	svc.Tick(context.Background())
	assert.Equal(t, before.Planets[0].InstanceID, svc.Snapshot().Planets[0].InstanceID,
		"no rotation before the interval elapses")

	clock.Advance(2 * time.Minute)
	svc.Tick(context.Background())
	after := svc.Snapshot()
	assert.NotEqual(t, before.Planets[0].InstanceID, after.Planets[0].InstanceID,
		"planet pool rotates after 15 minutes")
	assert.Equal(t, before.Sun.InstanceID, after.Sun.InstanceID,
		"sun holds until its own 30 minute gate")

	clock.Advance(15 * time.Minute)
	svc.Tick(context.Background())
	assert.NotEqual(t, before.Sun.InstanceID, svc.Snapshot().Sun.InstanceID)
}

func TestRefreshDiscardsUnpurchased(t *testing.T) {
	svc, _, _, _ := newTestShop(t, fixedRnd(0))

	before := svc.Snapshot().Planets
	svc.RefreshPlanets(context.Background())
	after := svc.Snapshot().Planets
	for _, old := range before {
		for _, current := range after {
			assert.NotEqual(t, old.InstanceID, current.InstanceID)
		}
	}
}

func TestRefreshTimers(t *testing.T) {
	svc, _, _, clock := newTestShop(t, fixedRnd(0))

	assert.Equal(t, domain.PlanetRefreshInterval, svc.PlanetRefreshIn())
	clock.Advance(10 * time.Minute)
	assert.Equal(t, 5*time.Minute, svc.PlanetRefreshIn())
	assert.Equal(t, 20*time.Minute, svc.SunRefreshIn())

	clock.Advance(time.Hour)
	assert.Equal(t, time.Duration(0), svc.PlanetRefreshIn())
}

func TestPurchase(t *testing.T) {
	svc, led, _, _ := newTestShop(t, fixedRnd(0))
	ctx := context.Background()

	listing := svc.Snapshot().Planets[0]
	card, err := svc.Purchase(ctx, listing.InstanceID)
	require.NoError(t, err)
	assert.Equal(t, listing.ArchetypeID, card.CardArchetype.ID)
	assert.Equal(t, float64(domain.StartingChronos-listing.Price), led.Balance())
	assert.Len(t, led.Inventory(), 1)

	_, err = svc.Purchase(ctx, listing.InstanceID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPurchased)
	assert.Len(t, led.Inventory(), 1, "double purchase must not deliver twice")
}

func TestPurchaseUnknownListing(t *testing.T) {
	svc, _, _, _ := newTestShop(t, fixedRnd(0))

	_, err := svc.Purchase(context.Background(), "no-such-listing")
	assert.ErrorIs(t, err, domain.ErrAlreadyPurchased,
		"a listing that never existed reads as already gone")
}

func TestDriftSkipsPurchased(t *testing.T) {
	svc, _, _, _ := newTestShop(t, fixedRnd(0.2))
	ctx := context.Background()

	before := svc.Snapshot().Planets
	require.Greater(t, len(before), 1)
	_, err := svc.Purchase(ctx, before[0].InstanceID)
	require.NoError(t, err)

	svc.Drift(ctx)

	after := svc.Snapshot().Planets
	assert.Equal(t, before[0].X, after[0].X, "purchased listings must not move")
	assert.Equal(t, before[0].Y, after[0].Y)
	assert.NotEqual(t, before[1].X, after[1].X, "unpurchased listings keep drifting")
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	svc, led, _, _ := newTestShop(t, fixedRnd(0))
	ctx := context.Background()

	require.NoError(t, led.SpendChronos(ctx, led.Balance()))
	listing := svc.Snapshot().Planets[0]
	_, err := svc.Purchase(ctx, listing.InstanceID)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.False(t, svc.Snapshot().Planets[0].Purchased)
}

func TestPurchaseRefundsOnDeliveryFailure(t *testing.T) {
	// Seed a persisted pool holding a listing whose archetype no longer
	// exists in the catalog, as after a catalog edit between sessions.
	store := storage.NewMemoryStore()
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	stale := domain.ShopState{
		Planets: []domain.ShopListing{{
			InstanceID:  "stale-listing",
			ArchetypeID: "planet-removed",
			Rarity:      domain.RarityCommon,
			Price:       domain.PriceForRarity(domain.RarityCommon),
		}},
		LastPlanetRefresh: clock.Now(),
	}
	require.NoError(t, storage.SaveJSON(ctx, store, storage.KeyShopUniverse, stale))

	cat, err := catalog.New(catalog.DefaultSuns(), catalog.DefaultPlanets())
	require.NoError(t, err)
	led := ledger.Load(ctx, store, cat, clock)
	svc := New(ctx, store, cat, led, clock, fixedRnd(0))

	_, err = svc.Purchase(ctx, "stale-listing")
	require.ErrorIs(t, err, domain.ErrUnknownArchetype)
	assert.Equal(t, float64(domain.StartingChronos), led.Balance(), "payment refunded")
	assert.Empty(t, led.Inventory())
}

func TestPersistenceRoundTrip(t *testing.T) {
	svc, led, store, clock := newTestShop(t, fixedRnd(0))
	ctx := context.Background()

	listing := svc.Snapshot().Planets[0]
	_, err := svc.Purchase(ctx, listing.InstanceID)
	require.NoError(t, err)

	cat, err := catalog.New(catalog.DefaultSuns(), catalog.DefaultPlanets())
	require.NoError(t, err)
	restored := New(ctx, store, cat, led, clock, fixedRnd(0))
	snap := restored.Snapshot()
	assert.True(t, snap.Planets[0].Purchased, "purchased flag survives restart")
	assert.Equal(t, listing.InstanceID, snap.Planets[0].InstanceID)
}
