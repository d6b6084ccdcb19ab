package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cosmogen/cosmogenesis/internal/domain"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"version": Version})
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.ledger.Snapshot())
}

// summaryResponse is the human-readable system overview.
type summaryResponse struct {
	Chronos      string `json:"chronos"`
	IncomePerMin string `json:"income_per_min"`
	SystemPower  string `json:"system_power"`
	Planets      int    `json:"planets"`
	ActiveOrbits int    `json:"active_orbits"`
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	universe := s.universe.Snapshot()
	p := message.NewPrinter(language.English)

	respondJSON(w, http.StatusOK, summaryResponse{
		Chronos:      p.Sprintf("%.2f", s.ledger.Balance()),
		IncomePerMin: p.Sprintf("+%.1f/min", universe.Income.TotalPerMinute),
		SystemPower:  p.Sprintf("%.0f", universe.TotalPower),
		Planets:      len(universe.Planets),
		ActiveOrbits: universe.ActiveOrbits(),
	})
}

// shopResponse bundles the stock with the remaining rotation timers.
type shopResponse struct {
	domain.ShopState
	PlanetRefreshInMs int64 `json:"planet_refresh_in_ms"`
	SunRefreshInMs    int64 `json:"sun_refresh_in_ms"`
}

func (s *Server) handleGetShop(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, shopResponse{
		ShopState:         s.shop.Snapshot(),
		PlanetRefreshInMs: s.shop.PlanetRefreshIn().Milliseconds(),
		SunRefreshInMs:    s.shop.SunRefreshIn().Milliseconds(),
	})
}

type purchaseListingRequest struct {
	InstanceID string `json:"instance_id" validate:"required"`
}

func (s *Server) handlePurchaseListing(w http.ResponseWriter, r *http.Request) {
	var req purchaseListingRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	card, err := s.shop.Purchase(r.Context(), req.InstanceID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// missionView decorates a mission with the player's progress against it.
type missionView struct {
	domain.Mission
	Completed       bool `json:"completed"`
	RequirementsMet bool `json:"requirements_met"`
}

func (s *Server) handleGetMissions(w http.ResponseWriter, r *http.Request) {
	all := s.missions.Missions()
	views := make([]missionView, 0, len(all))
	for _, m := range all {
		views = append(views, missionView{
			Mission:         m,
			Completed:       s.ledger.IsMissionCompleted(m.ID),
			RequirementsMet: s.missions.RequirementsMet(m.ID),
		})
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handlePurchaseMission(w http.ResponseWriter, r *http.Request) {
	m, err := s.missions.PurchaseMission(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// boostersResponse pairs the storefront with the player's running boosters.
type boostersResponse struct {
	Available []domain.BoosterSpec   `json:"available"`
	Active    []domain.ActiveBooster `json:"active"`
	Effects   domain.BoosterEffects  `json:"effects"`
}

func (s *Server) handleGetBoosters(w http.ResponseWriter, r *http.Request) {
	active := s.ledger.ActiveBoosters()
	respondJSON(w, http.StatusOK, boostersResponse{
		Available: s.missions.Boosters(),
		Active:    active,
		Effects:   s.missions.ActiveEffects(s.clock.Now(), active),
	})
}

func (s *Server) handlePurchaseBooster(w http.ResponseWriter, r *http.Request) {
	b, err := s.missions.PurchaseBooster(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) handleGetUniverse(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.universe.Snapshot())
}

type placeSunRequest struct {
	InventoryID string `json:"inventory_id" validate:"required"`
}

func (s *Server) handlePlaceSun(w http.ResponseWriter, r *http.Request) {
	var req placeSunRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if err := s.universe.PlaceSun(r.Context(), req.InventoryID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.universe.Snapshot())
}

type placePlanetRequest struct {
	InventoryID string `json:"inventory_id" validate:"required"`
	Orbit       int    `json:"orbit" validate:"required,min=1,max=5"`
	Slot        int    `json:"slot" validate:"required,min=1"`
}

func (s *Server) handlePlacePlanet(w http.ResponseWriter, r *http.Request) {
	var req placePlanetRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if err := s.universe.PlacePlanet(r.Context(), req.InventoryID, req.Orbit, req.Slot); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.universe.Snapshot())
}

func (s *Server) handleRemovePlanet(w http.ResponseWriter, r *http.Request) {
	orbit, err1 := strconv.Atoi(chi.URLParam(r, "orbit"))
	slot, err2 := strconv.Atoi(chi.URLParam(r, "slot"))
	if err1 != nil || err2 != nil {
		respondError(w, http.StatusBadRequest, "orbit and slot must be integers")
		return
	}
	if err := s.universe.RemovePlanet(r.Context(), orbit, slot); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.universe.Snapshot())
}

func (s *Server) handleClearUniverse(w http.ResponseWriter, r *http.Request) {
	s.universe.Clear(r.Context())
	respondJSON(w, http.StatusOK, s.universe.Snapshot())
}

type visibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

// handleVisibility pauses the schedulers while the renderer is hidden and
// resumes them on return. Elapsed-time accrual makes the pause lossless.
func (s *Server) handleVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if *req.Visible {
		s.scheduler.Resume()
	} else {
		s.scheduler.Pause()
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "ok"})
}

func (s *Server) handleDebugLogs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.ring.Entries())
}

// handleRecoveryClear performs the full data clear offered by the
// initialization recovery flow.
func (s *Server) handleRecoveryClear(w http.ResponseWriter, r *http.Request) {
	s.resetAll(r.Context())
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "all game data cleared"})
}

// decodeAndValidate reads a JSON body into req and validates it, writing
// the error response itself on failure.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}
