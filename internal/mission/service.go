// Package mission sells orbit-unlock missions and timed boosters from
// static tables, gating missions on the live universe state.
package mission

import (
	"context"
	"fmt"
	"time"

	"github.com/cosmogen/cosmogenesis/internal/domain"
	"github.com/cosmogen/cosmogenesis/internal/ledger"
	"github.com/cosmogen/cosmogenesis/internal/logger"
	"github.com/cosmogen/cosmogenesis/internal/metrics"
)

// UniverseView is the read-only view of the placement engine the mission
// gates evaluate against.
type UniverseView interface {
	Snapshot() domain.UniverseState
}

// Service is the mission and booster store API.
type Service interface {
	Missions() []domain.Mission
	Boosters() []domain.BoosterSpec
	FindMission(id string) (domain.Mission, bool)
	FindBooster(id string) (domain.BoosterSpec, bool)
	RequirementsMet(id string) bool
	PurchaseMission(ctx context.Context, id string) (domain.Mission, error)
	PurchaseBooster(ctx context.Context, id string) (domain.BoosterSpec, error)
	ActiveEffects(now time.Time, active []domain.ActiveBooster) domain.BoosterEffects
}

type service struct {
	ledger   ledger.Service
	universe UniverseView
}

// New wires the static store against the ledger and the universe view.
func New(led ledger.Service, universe UniverseView) Service {
	return &service{ledger: led, universe: universe}
}

// Missions returns the mission table in display order.
func (s *service) Missions() []domain.Mission {
	return append([]domain.Mission{}, missions...)
}

// Boosters returns the booster table in display order.
func (s *service) Boosters() []domain.BoosterSpec {
	return append([]domain.BoosterSpec{}, boosters...)
}

// FindMission looks a mission up by id.
func (s *service) FindMission(id string) (domain.Mission, bool) {
	for _, m := range missions {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Mission{}, false
}

// FindBooster looks a booster up by id.
func (s *service) FindBooster(id string) (domain.BoosterSpec, bool) {
	for _, b := range boosters {
		if b.ID == id {
			return b, true
		}
	}
	return domain.BoosterSpec{}, false
}

// RequirementsMet evaluates a mission's gates against the current universe.
// Unknown missions are never met.
func (s *service) RequirementsMet(id string) bool {
	m, ok := s.FindMission(id)
	if !ok {
		return false
	}
	return CheckRequirements(m.Requirements, s.universe.Snapshot())
}

// CheckRequirements reports whether the universe satisfies the mission
// gates. Duplicate subtypes in Planets consume distinct placed planets.
func CheckRequirements(req domain.MissionRequirements, universe domain.UniverseState) bool {
	if req.Sun != "any" {
		if universe.Sun == nil || universe.Sun.Subtype != req.Sun {
			return false
		}
	}

	available := make([]string, 0, len(universe.Planets))
	for _, p := range universe.Planets {
		available = append(available, p.Subtype)
	}
	for _, want := range req.Planets {
		found := false
		for i, have := range available {
			if have == want {
				available = append(available[:i], available[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if req.Balance > 0 && universe.Bonuses.Balance < req.Balance {
		return false
	}
	if req.Power > 0 && universe.TotalPower < req.Power {
		return false
	}
	return true
}

// PurchaseMission completes a mission: gates are checked before payment,
// then the reward orbit is unlocked, any bonus card delivered, and the
// completion recorded permanently.
func (s *service) PurchaseMission(ctx context.Context, id string) (domain.Mission, error) {
	m, ok := s.FindMission(id)
	if !ok {
		return domain.Mission{}, fmt.Errorf("%w: %s", domain.ErrUnknownMission, id)
	}
	if s.ledger.IsMissionCompleted(id) {
		return domain.Mission{}, fmt.Errorf("%w: %s", domain.ErrMissionCompleted, id)
	}
	if !CheckRequirements(m.Requirements, s.universe.Snapshot()) {
		return domain.Mission{}, fmt.Errorf("%w: %s", domain.ErrRequirementsNotMet, id)
	}
	if err := s.ledger.SpendChronos(ctx, float64(m.Price)); err != nil {
		return domain.Mission{}, err
	}

	if m.Reward.UnlockOrbit > 0 {
		// Already-unlocked is fine: the mission still completes.
		if err := s.ledger.UnlockOrbit(ctx, m.Reward.UnlockOrbit); err != nil {
			logger.FromContext(ctx).Debug("reward orbit already unlocked",
				"mission", id, "orbit", m.Reward.UnlockOrbit)
		}
	}
	if m.Reward.BonusCard != "" {
		if _, err := s.ledger.AddCardToInventory(ctx, m.Reward.BonusCard); err != nil {
			logger.FromContext(ctx).Warn("bonus card delivery failed",
				"mission", id, "card", m.Reward.BonusCard, "error", err)
		}
	}
	s.ledger.CompleteMission(ctx, id)
	metrics.MissionsCompleted.WithLabelValues(id).Inc()
	metrics.ChronosSpent.Add(float64(m.Price))
	logger.FromContext(ctx).Info("mission completed", "mission", id, "price", m.Price)
	return m, nil
}

// PurchaseBooster pays for and activates a booster. Repeat purchases stack
// as separate timers.
func (s *service) PurchaseBooster(ctx context.Context, id string) (domain.BoosterSpec, error) {
	b, ok := s.FindBooster(id)
	if !ok {
		return domain.BoosterSpec{}, fmt.Errorf("%w: %s", domain.ErrUnknownBooster, id)
	}
	if err := s.ledger.SpendChronos(ctx, float64(b.Price)); err != nil {
		return domain.BoosterSpec{}, err
	}
	s.ledger.AddBooster(ctx, b.ID, b.DurationHours)
	metrics.BoostersActivated.WithLabelValues(id).Inc()
	metrics.ChronosSpent.Add(float64(b.Price))
	logger.FromContext(ctx).Info("booster activated",
		"booster", id, "duration_hours", b.DurationHours)
	return b, nil
}

// ActiveEffects sums the effect fields of every booster still running at
// now. Expired entries contribute nothing.
func (s *service) ActiveEffects(now time.Time, active []domain.ActiveBooster) domain.BoosterEffects {
	var total domain.BoosterEffects
	for _, a := range active {
		if !a.Active(now) {
			continue
		}
		if spec, ok := s.FindBooster(a.BoosterID); ok {
			total.PlanetRare += spec.Effect.PlanetRare
			total.SunRare += spec.Effect.SunRare
			total.ChronosBoost += spec.Effect.ChronosBoost
		}
	}
	return total
}
