package universe

import (
	"math"

	"github.com/cosmogen/cosmogenesis/internal/domain"
)

// Bonus dimension weights applied to the income multiplier. Negative
// dimensions contribute zero rather than reducing income below the floor.
const (
	stabilityWeight = 0.01
	energyWeight    = 0.005
	balanceWeight   = 0.015
)

// computeIncome derives the income breakdown from the current placements.
// It returns both the stored breakdown (total rounded to two decimals) and
// the raw rate used by the accrual loop.
func computeIncome(baseRate float64, sun *domain.CardArchetype, planets map[string]domain.PlacedPlanet, bonuses domain.Bonuses) (domain.IncomeBreakdown, float64) {
	var sunIncome, planetIncome float64
	if sun != nil {
		sunIncome = sun.BaseIncome()
	}
	for _, p := range planets {
		planetIncome += p.BaseIncome()
	}

	multiplier := 1.0 +
		math.Max(0, float64(bonuses.Stability))*stabilityWeight +
		math.Max(0, float64(bonuses.Energy))*energyWeight +
		math.Max(0, float64(bonuses.Balance))*balanceWeight

	total := (baseRate + sunIncome + planetIncome) * multiplier

	return domain.IncomeBreakdown{
		BaseRate:        baseRate,
		SunIncome:       sunIncome,
		PlanetIncome:    planetIncome,
		BonusMultiplier: multiplier,
		TotalPerMinute:  math.Round(total*100) / 100,
	}, total
}
