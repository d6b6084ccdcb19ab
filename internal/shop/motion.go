package shop

import (
	"math"

	"github.com/cosmogen/cosmogenesis/internal/domain"
)

// driftStep scales listing speed to percent-per-step.
const driftStep = 0.02

// advance moves a listing one step along its float direction, reflecting
// off the [FloatMin, FloatMax] bounds. A rare perturbation keeps the drift
// from looking mechanical.
func advance(l *domain.ShopListing, rnd func() float64) {
	radians := l.FloatDirection * math.Pi / 180
	l.X += math.Cos(radians) * l.FloatSpeed * driftStep
	l.Y += math.Sin(radians) * l.FloatSpeed * driftStep

	if l.X < domain.FloatMin || l.X > domain.FloatMax {
		l.FloatDirection = 180 - l.FloatDirection
		l.X = clamp(l.X, domain.FloatMin, domain.FloatMax)
	}
	if l.Y < domain.FloatMin || l.Y > domain.FloatMax {
		l.FloatDirection = -l.FloatDirection
		l.Y = clamp(l.Y, domain.FloatMin, domain.FloatMax)
	}

	if rnd() < 0.005 {
		l.FloatDirection += (rnd() - 0.5) * 30
	}

	l.FloatDirection = math.Mod(l.FloatDirection, 360)
	if l.FloatDirection < 0 {
		l.FloatDirection += 360
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
