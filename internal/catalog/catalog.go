// Package catalog serves the static card archetype reference data.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cosmogen/cosmogenesis/internal/domain"
)

// Provider exposes read-only access to the card catalog.
type Provider interface {
	Suns() []domain.CardArchetype
	Planets() []domain.CardArchetype
	FindByID(id string) (domain.CardArchetype, bool)
}

// Catalog is an immutable, validated card library.
type Catalog struct {
	suns    []domain.CardArchetype
	planets []domain.CardArchetype
	byID    map[string]domain.CardArchetype
}

type cardFile struct {
	Cards []domain.CardArchetype `yaml:"cards"`
}

// Load reads suns.yaml and planets.yaml from dataDir. If either file is
// missing or invalid the deterministic fallback library is served instead,
// so the economy stays playable in a degraded state.
func Load(dataDir string) *Catalog {
	suns, err := loadFile(filepath.Join(dataDir, "suns.yaml"), domain.CategorySun)
	if err != nil {
		slog.Warn("falling back to default suns",
			"error", fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err))
		suns = DefaultSuns()
	}
	planets, err := loadFile(filepath.Join(dataDir, "planets.yaml"), domain.CategoryPlanet)
	if err != nil {
		slog.Warn("falling back to default planets",
			"error", fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err))
		planets = DefaultPlanets()
	}

	cat, err := New(suns, planets)
	if err != nil {
		// Duplicate ids across the two loaded files; defaults are disjoint.
		slog.Warn("falling back to default catalog", "error", err)
		cat, _ = New(DefaultSuns(), DefaultPlanets())
	}
	return cat
}

// New builds a catalog from already-loaded archetypes, enforcing id
// uniqueness across both categories.
func New(suns, planets []domain.CardArchetype) (*Catalog, error) {
	byID := make(map[string]domain.CardArchetype, len(suns)+len(planets))
	for _, card := range append(append([]domain.CardArchetype{}, suns...), planets...) {
		if _, exists := byID[card.ID]; exists {
			return nil, fmt.Errorf("duplicate archetype id %q", card.ID)
		}
		byID[card.ID] = card
	}
	return &Catalog{suns: suns, planets: planets, byID: byID}, nil
}

func loadFile(path string, want domain.Category) ([]domain.CardArchetype, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var file cardFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(file.Cards) == 0 {
		return nil, fmt.Errorf("%s: no cards defined", path)
	}

	validate := validator.New()
	for i, card := range file.Cards {
		if err := validate.Struct(card); err != nil {
			return nil, fmt.Errorf("%s: card %d (%s): %w", path, i, card.ID, err)
		}
		if card.Category != want {
			return nil, fmt.Errorf("%s: card %s has category %s, want %s",
				path, card.ID, card.Category, want)
		}
	}
	return file.Cards, nil
}

// Suns returns all sun archetypes.
func (c *Catalog) Suns() []domain.CardArchetype { return c.suns }

// Planets returns all planet archetypes.
func (c *Catalog) Planets() []domain.CardArchetype { return c.planets }

// FindByID looks an archetype up in either category.
func (c *Catalog) FindByID(id string) (domain.CardArchetype, bool) {
	card, ok := c.byID[id]
	return card, ok
}
