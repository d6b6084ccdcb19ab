package domain

import "time"

// Category distinguishes the two kinds of celestial cards.
type Category string

const (
	CategorySun    Category = "sun"
	CategoryPlanet Category = "planet"
)

// Rarity represents how rare a card archetype is. Rarity drives shop pricing.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Order returns the sort weight of a rarity, common lowest.
func (r Rarity) Order() int {
	switch r {
	case RarityCommon:
		return 1
	case RarityUncommon:
		return 2
	case RarityRare:
		return 3
	case RarityEpic:
		return 4
	case RarityLegendary:
		return 5
	default:
		return 0
	}
}

// Bonuses are the three percent modifiers carried by every card and
// aggregated at the universe level.
type Bonuses struct {
	Stability int `json:"stability" yaml:"stability"`
	Energy    int `json:"energy" yaml:"energy"`
	Balance   int `json:"balance" yaml:"balance"`
}

// Add returns the component-wise sum of two bonus sets.
func (b Bonuses) Add(other Bonuses) Bonuses {
	return Bonuses{
		Stability: b.Stability + other.Stability,
		Energy:    b.Energy + other.Energy,
		Balance:   b.Balance + other.Balance,
	}
}

// CardArchetype is a catalog-defined template for a sun or planet.
// Archetypes are immutable at runtime; players own InventoryCard instances.
type CardArchetype struct {
	ID              string   `json:"id" yaml:"id" validate:"required"`
	Name            string   `json:"name" yaml:"name" validate:"required"`
	Category        Category `json:"category" yaml:"category" validate:"required,oneof=sun planet"`
	Subtype         string   `json:"subtype" yaml:"subtype" validate:"required"`
	Rarity          Rarity   `json:"rarity" yaml:"rarity" validate:"required,oneof=common uncommon rare epic legendary"`
	Power           float64  `json:"power" yaml:"power" validate:"gte=0"`
	Bonuses         Bonuses  `json:"bonuses" yaml:"bonuses"`
	IncomePerMinute float64  `json:"income_per_minute" yaml:"income_per_minute" validate:"gte=0"`
	Description     string   `json:"description,omitempty" yaml:"description"`
	Color           string   `json:"color" yaml:"color"`
	Size            int      `json:"size" yaml:"size"`
}

// BaseIncome returns the archetype's passive income contribution per minute.
// Cards without an explicit rate fall back to a fraction of their power:
// 2% for suns, 1% for planets.
func (c CardArchetype) BaseIncome() float64 {
	if c.IncomePerMinute > 0 {
		return c.IncomePerMinute
	}
	if c.Category == CategorySun {
		return c.Power * 0.02
	}
	return c.Power * 0.01
}

// InventoryCard is an owned instance of an archetype. Multiple cards may
// reference the same archetype id.
type InventoryCard struct {
	CardArchetype
	InventoryID string    `json:"inventory_id"`
	ObtainedAt  time.Time `json:"obtained_at"`
}
