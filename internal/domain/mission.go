package domain

// MissionRequirements gate an orbit-unlock mission on the current universe.
type MissionRequirements struct {
	// Sun is the required sun subtype, or "any".
	Sun string `json:"sun"`
	// Planets lists required planet subtypes; duplicates mean that many
	// placed planets of the subtype are needed.
	Planets []string `json:"planets"`
	// Balance is the minimum aggregate balance bonus.
	Balance int `json:"balance"`
	// Power is the minimum total power; zero means no power requirement.
	Power float64 `json:"power,omitempty"`
}

// MissionReward is granted once when a mission is purchased.
type MissionReward struct {
	UnlockOrbit int    `json:"unlock_orbit"`
	BonusCard   string `json:"bonus_card,omitempty"`
}

// Mission is a static one-time purchasable that unlocks an orbit.
type Mission struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Price        int                 `json:"price"`
	Requirements MissionRequirements `json:"requirements"`
	Reward       MissionReward       `json:"reward"`
}

// BoosterSpec is a static purchasable timed booster.
type BoosterSpec struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Price         int            `json:"price"`
	DurationHours int            `json:"duration_hours"`
	Effect        BoosterEffects `json:"effect"`
}
