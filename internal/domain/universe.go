package domain

import (
	"fmt"
	"time"
)

// PlacedPlanet is a planet occupying an orbit slot in the universe.
type PlacedPlanet struct {
	CardArchetype
	InventoryID string `json:"inventory_id,omitempty"`
	Orbit       int    `json:"orbit"`
	Slot        int    `json:"slot"`
}

// SlotKey builds the "orbit-slot" key used in the persisted planets map.
func SlotKey(orbit, slot int) string {
	return fmt.Sprintf("%d-%d", orbit, slot)
}

// IncomeBreakdown is the derived income state of the universe.
type IncomeBreakdown struct {
	BaseRate         float64 `json:"base_rate"`
	SunIncome        float64 `json:"sun_income"`
	PlanetIncome     float64 `json:"planet_income"`
	BonusMultiplier  float64 `json:"bonus_multiplier"`
	TotalPerMinute   float64 `json:"total_per_minute"`
}

// UniverseState is the persisted placement state plus its derived totals.
// Derived fields are recomputed after every placement mutation.
type UniverseState struct {
	Sun          *CardArchetype          `json:"sun"`
	Planets      map[string]PlacedPlanet `json:"planets"`
	TotalPower   float64                 `json:"total_power"`
	Bonuses      Bonuses                 `json:"bonuses"`
	Income       IncomeBreakdown         `json:"income"`
	LastSaveTime time.Time               `json:"last_save_time"`
}

// NewUniverseState returns an empty universe with the given base income rate.
func NewUniverseState(baseRate float64) UniverseState {
	return UniverseState{
		Planets: map[string]PlacedPlanet{},
		Income: IncomeBreakdown{
			BaseRate:        baseRate,
			BonusMultiplier: 1.0,
			TotalPerMinute:  baseRate,
		},
	}
}

// ActiveOrbits returns the count of distinct orbits with at least one planet.
func (u UniverseState) ActiveOrbits() int {
	orbits := map[int]struct{}{}
	for _, p := range u.Planets {
		orbits[p.Orbit] = struct{}{}
	}
	return len(orbits)
}
