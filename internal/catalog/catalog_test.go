package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmogen/cosmogenesis/internal/domain"
)

func TestNewRejectsDuplicateIDs(t *testing.T) {
	dup := domain.CardArchetype{ID: "sun-basic", Category: domain.CategoryPlanet}
	_, err := New(DefaultSuns(), append(DefaultPlanets(), dup))
	assert.Error(t, err)
}

func TestFindByID(t *testing.T) {
	cat, err := New(DefaultSuns(), DefaultPlanets())
	require.NoError(t, err)

	card, ok := cat.FindByID("planet-rocky")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryPlanet, card.Category)

	_, ok = cat.FindByID("planet-missing")
	assert.False(t, ok)
}

func TestLoadFallsBackWhenFilesMissing(t *testing.T) {
	cat := Load(t.TempDir())

	assert.Len(t, cat.Suns(), len(DefaultSuns()))
	assert.Len(t, cat.Planets(), len(DefaultPlanets()))
	_, ok := cat.FindByID("sun-basic")
	assert.True(t, ok)
}

func TestLoadFallsBackOnInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "suns.yaml"), []byte("cards: ["), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planets.yaml"), []byte("cards: ["), 0o644))

	cat := Load(dir)
	assert.Len(t, cat.Suns(), len(DefaultSuns()))
}

func TestLoadFallsBackOnValidationFailure(t *testing.T) {
	dir := t.TempDir()
	// Missing required fields.
	bad := "cards:\n  - id: sun-bad\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "suns.yaml"), []byte(bad), 0o644))

	cat := Load(dir)
	_, ok := cat.FindByID("sun-bad")
	assert.False(t, ok, "invalid files are replaced wholesale by defaults")
	assert.NotEmpty(t, cat.Suns())
}

func TestLoadValidFiles(t *testing.T) {
	dir := t.TempDir()
	suns := `cards:
  - id: sun-test
    name: Test Sun
    category: sun
    subtype: test
    rarity: common
    power: 50
    bonuses: { stability: 1, energy: 1, balance: 1 }
    income_per_minute: 1.0
    color: "#ffffff"
    size: 100
`
	planets := `cards:
  - id: planet-test
    name: Test Planet
    category: planet
    subtype: test
    rarity: rare
    power: 10
    bonuses: { stability: 1, energy: 1, balance: 1 }
    income_per_minute: 0.1
    color: "#000000"
    size: 30
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "suns.yaml"), []byte(suns), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planets.yaml"), []byte(planets), 0o644))

	cat := Load(dir)
	require.Len(t, cat.Suns(), 1)
	require.Len(t, cat.Planets(), 1)
	card, ok := cat.FindByID("planet-test")
	require.True(t, ok)
	assert.Equal(t, domain.RarityRare, card.Rarity)
}

func TestDefaultsCoverRequiredRarities(t *testing.T) {
	// The fallback library must keep the economy playable: at least 3
	// suns and 4 planets spanning common through rare.
	suns, planets := DefaultSuns(), DefaultPlanets()
	require.GreaterOrEqual(t, len(suns), 3)
	require.GreaterOrEqual(t, len(planets), 4)

	rarities := map[domain.Rarity]bool{}
	for _, c := range append(suns, planets...) {
		rarities[c.Rarity] = true
	}
	assert.True(t, rarities[domain.RarityCommon])
	assert.True(t, rarities[domain.RarityUncommon])
	assert.True(t, rarities[domain.RarityRare])
}
