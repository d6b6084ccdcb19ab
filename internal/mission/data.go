package mission

import "github.com/cosmogen/cosmogenesis/internal/domain"

// missions is the fixed mission table in display order. Each entry unlocks
// the next orbit ring once its system requirements hold.
var missions = []domain.Mission{
	{
		ID:    "orbit-3",
		Name:  "Orbit 3",
		Price: 150,
		Requirements: domain.MissionRequirements{
			Sun:     "any",
			Planets: []string{"gas", "gas"},
			Balance: 200,
		},
		Reward: domain.MissionReward{UnlockOrbit: 3},
	},
	{
		ID:    "orbit-4",
		Name:  "Orbit 4",
		Price: 300,
		Requirements: domain.MissionRequirements{
			Sun:     "blue-giant",
			Planets: []string{"lava", "ocean"},
			Balance: 350,
		},
		Reward: domain.MissionReward{UnlockOrbit: 4},
	},
	{
		ID:    "orbit-5",
		Name:  "Orbit 5",
		Price: 500,
		Requirements: domain.MissionRequirements{
			Sun:     "neutron",
			Planets: []string{"crystal", "crystal", "crystal"},
			Balance: 500,
			Power:   800,
		},
		Reward: domain.MissionReward{UnlockOrbit: 5, BonusCard: "planet-ultimate"},
	},
}

// boosters is the fixed booster storefront in display order.
var boosters = []domain.BoosterSpec{
	{
		ID:            "luck-1",
		Name:          "Luck Amplifier I",
		Price:         150,
		DurationHours: 24,
		Effect:        domain.BoosterEffects{PlanetRare: 0.1},
	},
	{
		ID:            "luck-2",
		Name:          "Luck Amplifier II",
		Price:         300,
		DurationHours: 24,
		Effect:        domain.BoosterEffects{PlanetRare: 0.25, SunRare: 0.25},
	},
	{
		ID:            "gold-rush",
		Name:          "Gold Rush",
		Price:         500,
		DurationHours: 12,
		Effect:        domain.BoosterEffects{PlanetRare: 0.5, SunRare: 0.5},
	},
	{
		ID:            "xp-boost",
		Name:          "Experience Booster",
		Price:         200,
		DurationHours: 8,
		Effect:        domain.BoosterEffects{ChronosBoost: 1.0},
	},
}
