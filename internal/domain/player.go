package domain

import "time"

// StartingChronos is the balance granted on first launch.
const StartingChronos = 1000

// PlayerState is the whole persisted player record. It is owned by the
// ledger service and mutated only through ledger operations.
type PlayerState struct {
	Chronos           float64         `json:"chronos"`
	Inventory         []InventoryCard `json:"inventory"`
	UnlockedOrbits    []int           `json:"unlocked_orbits"`
	ActiveBoosters    []ActiveBooster `json:"active_boosters"`
	CompletedMissions []string        `json:"completed_missions"`

	// Mirror stats written back by the placement engine for display.
	SystemPower  float64 `json:"system_power"`
	PlanetsCount int     `json:"planets_count"`
}

// NewPlayerState returns the defaults for a fresh player: starting currency
// and orbits 1 and 2 unlocked.
func NewPlayerState() PlayerState {
	return PlayerState{
		Chronos:           StartingChronos,
		Inventory:         []InventoryCard{},
		UnlockedOrbits:    []int{1, 2},
		ActiveBoosters:    []ActiveBooster{},
		CompletedMissions: []string{},
	}
}

// ActiveBooster is a purchased timed booster. Expired entries stay in
// storage; every read filters by remaining time instead.
type ActiveBooster struct {
	BoosterID   string    `json:"booster_id"`
	ActivatedAt time.Time `json:"activated_at"`
	Duration    Millis    `json:"duration"`
}

// ExpiresAt returns the instant the booster stops applying.
func (b ActiveBooster) ExpiresAt() time.Time {
	return b.ActivatedAt.Add(b.Duration.Duration())
}

// Active reports whether the booster still has remaining time at now.
func (b ActiveBooster) Active(now time.Time) bool {
	return now.Before(b.ExpiresAt())
}

// Millis serializes a duration as integer milliseconds, matching the
// persisted save format.
type Millis int64

// DurationToMillis converts a duration to its persisted representation.
func DurationToMillis(d time.Duration) Millis {
	return Millis(d.Milliseconds())
}

// Duration converts back to a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// BoosterEffects are the aggregate multiplier fields contributed by the
// player's currently active boosters.
type BoosterEffects struct {
	PlanetRare   float64 `json:"planet_rare"`
	SunRare      float64 `json:"sun_rare"`
	ChronosBoost float64 `json:"chronos_boost"`
}
