package catalog

import "github.com/cosmogen/cosmogenesis/internal/domain"

// DefaultSuns is the built-in sun library used when the catalog files are
// unavailable. Three suns covering common, uncommon and rare.
func DefaultSuns() []domain.CardArchetype {
	return []domain.CardArchetype{
		{
			ID:              "sun-basic",
			Name:            "Yellow Dwarf",
			Category:        domain.CategorySun,
			Subtype:         "basic",
			Rarity:          domain.RarityCommon,
			Power:           100,
			Bonuses:         domain.Bonuses{Stability: 10, Energy: 5, Balance: 8},
			IncomePerMinute: 2.0,
			Description:     "A balance of stability and energy. The ideal sun for a first system.",
			Color:           "#ffd700",
			Size:            180,
		},
		{
			ID:              "sun-red-giant",
			Name:            "Red Giant",
			Category:        domain.CategorySun,
			Subtype:         "red-giant",
			Rarity:          domain.RarityUncommon,
			Power:           200,
			Bonuses:         domain.Bonuses{Stability: -5, Energy: 20, Balance: 3},
			IncomePerMinute: 3.5,
			Description:     "Raw energy, low stability. For experienced cosmogenesists.",
			Color:           "#ff4500",
			Size:            220,
		},
		{
			ID:              "sun-blue-supergiant",
			Name:            "Blue Supergiant",
			Category:        domain.CategorySun,
			Subtype:         "blue-supergiant",
			Rarity:          domain.RarityRare,
			Power:           350,
			Bonuses:         domain.Bonuses{Stability: -10, Energy: 35, Balance: -5},
			IncomePerMinute: 5.0,
			Description:     "Extreme power and energy. Handle with care.",
			Color:           "#1e90ff",
			Size:            250,
		},
	}
}

// DefaultPlanets is the built-in planet library used when the catalog files
// are unavailable. Four planets covering common and uncommon.
func DefaultPlanets() []domain.CardArchetype {
	return []domain.CardArchetype{
		{
			ID:              "planet-rocky",
			Name:            "Rocky Planet",
			Category:        domain.CategoryPlanet,
			Subtype:         "rocky",
			Rarity:          domain.RarityCommon,
			Power:           25,
			Bonuses:         domain.Bonuses{Stability: 5, Energy: 2, Balance: 3},
			IncomePerMinute: 0.5,
			Description:     "A stable world with a solid surface. A fine pick for beginners.",
			Color:           "#8B4513",
			Size:            35,
		},
		{
			ID:              "planet-gas",
			Name:            "Gas Giant",
			Category:        domain.CategoryPlanet,
			Subtype:         "gas",
			Rarity:          domain.RarityCommon,
			Power:           40,
			Bonuses:         domain.Bonuses{Stability: 2, Energy: 8, Balance: 4},
			IncomePerMinute: 0.8,
			Description:     "A massive ball of gas. Feeds the system's energy.",
			Color:           "#87CEEB",
			Size:            50,
		},
		{
			ID:              "planet-ice",
			Name:            "Ice Giant",
			Category:        domain.CategoryPlanet,
			Subtype:         "ice",
			Rarity:          domain.RarityUncommon,
			Power:           35,
			Bonuses:         domain.Bonuses{Stability: 8, Energy: 1, Balance: 5},
			IncomePerMinute: 0.6,
			Description:     "A frozen world that steadies the whole system.",
			Color:           "#F0F8FF",
			Size:            45,
		},
		{
			ID:              "planet-lava",
			Name:            "Lava Planet",
			Category:        domain.CategoryPlanet,
			Subtype:         "lava",
			Rarity:          domain.RarityUncommon,
			Power:           45,
			Bonuses:         domain.Bonuses{Stability: -3, Energy: 12, Balance: 2},
			IncomePerMinute: 1.2,
			Description:     "A molten world of constant eruptions. An enormous energy source.",
			Color:           "#FF4500",
			Size:            40,
		},
	}
}
