package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmogen/cosmogenesis/internal/catalog"
	"github.com/cosmogen/cosmogenesis/internal/domain"
	"github.com/cosmogen/cosmogenesis/internal/storage"
)

func newTestService(t *testing.T) (Service, *storage.MemoryStore, *clockwork.FakeClock) {
	t.Helper()
	store := storage.NewMemoryStore()
	cat, err := catalog.New(catalog.DefaultSuns(), catalog.DefaultPlanets())
	require.NoError(t, err)
	clock := clockwork.NewFakeClock()
	return Load(context.Background(), store, cat, clock), store, clock
}

func TestLoadDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	snap := svc.Snapshot()
	assert.Equal(t, float64(domain.StartingChronos), snap.Chronos)
	assert.Equal(t, []int{1, 2}, snap.UnlockedOrbits)
	assert.Empty(t, snap.Inventory)
	assert.Empty(t, snap.CompletedMissions)
}

func TestLoadCorruptedSave(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, storage.KeyPlayerData, []byte("{not json")))

	cat, err := catalog.New(catalog.DefaultSuns(), catalog.DefaultPlanets())
	require.NoError(t, err)
	svc := Load(ctx, store, cat, clockwork.NewFakeClock())

	// Fresh defaults, corrupt payload preserved under a backup key.
	assert.Equal(t, float64(domain.StartingChronos), svc.Balance())
	_, ok, err := store.Get(ctx, storage.KeyPlayerData)
	require.NoError(t, err)
	assert.True(t, ok, "defaults should be persisted after recovery")
}

func TestSpendChronos(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SpendChronos(ctx, 250))
	assert.Equal(t, 750.0, svc.Balance())

	err := svc.SpendChronos(ctx, 751)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 750.0, svc.Balance(), "failed spend must not mutate balance")
}

func TestSpendExactBalance(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SpendChronos(ctx, domain.StartingChronos))
	assert.Equal(t, 0.0, svc.Balance())
}

func TestAddChronosRounds(t *testing.T) {
	svc, _, _ := newTestService(t)

	balance := svc.AddChronos(context.Background(), 0.005)
	assert.Equal(t, 1000.01, balance)
}

func TestInventoryAddAndUse(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	card, err := svc.AddCardToInventory(ctx, "planet-rocky")
	require.NoError(t, err)
	assert.NotEmpty(t, card.InventoryID)
	assert.Equal(t, "planet-rocky", card.CardArchetype.ID)

	second, err := svc.AddCardToInventory(ctx, "planet-rocky")
	require.NoError(t, err)
	assert.NotEqual(t, card.InventoryID, second.InventoryID,
		"each copy gets its own instance id")
	assert.Len(t, svc.Inventory(), 2)

	used, err := svc.UseCardFromInventory(ctx, card.InventoryID)
	require.NoError(t, err)
	assert.Equal(t, card.InventoryID, used.InventoryID)
	assert.Len(t, svc.Inventory(), 1)

	_, err = svc.UseCardFromInventory(ctx, card.InventoryID)
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestAddCardUnknownArchetype(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.AddCardToInventory(context.Background(), "planet-nonexistent")
	assert.ErrorIs(t, err, domain.ErrUnknownArchetype)
	assert.Empty(t, svc.Inventory())
}

func TestUnlockOrbit(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	assert.True(t, svc.IsOrbitUnlocked(1))
	assert.False(t, svc.IsOrbitUnlocked(3))

	require.NoError(t, svc.UnlockOrbit(ctx, 3))
	assert.True(t, svc.IsOrbitUnlocked(3))

	err := svc.UnlockOrbit(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrOrbitUnlocked)
}

func TestBoosterExpiry(t *testing.T) {
	svc, _, clock := newTestService(t)
	ctx := context.Background()

	svc.AddBooster(ctx, "luck-1", 1)
	require.Len(t, svc.ActiveBoosters(), 1)

	clock.Advance(59 * time.Minute)
	assert.Len(t, svc.ActiveBoosters(), 1)

	clock.Advance(2 * time.Minute)
	assert.Empty(t, svc.ActiveBoosters(), "expired boosters filter out at read")

	// Expired entries stay in the raw state until a future rewrite.
	assert.Len(t, svc.Snapshot().ActiveBoosters, 1)
}

func TestCompleteMissionIdempotent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	assert.False(t, svc.IsMissionCompleted("orbit-3"))
	svc.CompleteMission(ctx, "orbit-3")
	svc.CompleteMission(ctx, "orbit-3")
	assert.True(t, svc.IsMissionCompleted("orbit-3"))
	assert.Len(t, svc.Snapshot().CompletedMissions, 1)
}

func TestPersistenceRoundTrip(t *testing.T) {
	svc, store, clock := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SpendChronos(ctx, 100))
	_, err := svc.AddCardToInventory(ctx, "sun-basic")
	require.NoError(t, err)
	require.NoError(t, svc.UnlockOrbit(ctx, 3))

	cat, err := catalog.New(catalog.DefaultSuns(), catalog.DefaultPlanets())
	require.NoError(t, err)
	restored := Load(ctx, store, cat, clock)

	assert.Equal(t, 900.0, restored.Balance())
	assert.Len(t, restored.Inventory(), 1)
	assert.True(t, restored.IsOrbitUnlocked(3))
}

func TestReset(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SpendChronos(ctx, 500))
	require.NoError(t, svc.UnlockOrbit(ctx, 4))
	svc.Reset(ctx)

	snap := svc.Snapshot()
	assert.Equal(t, float64(domain.StartingChronos), snap.Chronos)
	assert.Equal(t, []int{1, 2}, snap.UnlockedOrbits)
}
