package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cosmogen/cosmogenesis/internal/domain"
)

// SuccessResponse is a simple confirmation message.
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a user-facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a JSON error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondDomainError maps a game error onto an HTTP status and message.
// Every game error is recoverable; nothing here is fatal to the session.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		respondError(w, http.StatusPaymentRequired, domain.ErrMsgInsufficientFunds)
	case errors.Is(err, domain.ErrCardNotFound):
		respondError(w, http.StatusNotFound, domain.ErrMsgCardNotFound)
	case errors.Is(err, domain.ErrUnknownArchetype):
		respondError(w, http.StatusNotFound, domain.ErrMsgUnknownArchetype)
	case errors.Is(err, domain.ErrUnknownMission):
		respondError(w, http.StatusNotFound, domain.ErrMsgUnknownMission)
	case errors.Is(err, domain.ErrUnknownBooster):
		respondError(w, http.StatusNotFound, domain.ErrMsgUnknownBooster)
	case errors.Is(err, domain.ErrAlreadyPurchased):
		respondError(w, http.StatusConflict, domain.ErrMsgAlreadyPurchased)
	case errors.Is(err, domain.ErrMissionCompleted):
		respondError(w, http.StatusConflict, domain.ErrMsgMissionCompleted)
	case errors.Is(err, domain.ErrOrbitUnlocked):
		respondError(w, http.StatusConflict, domain.ErrMsgOrbitUnlocked)
	case errors.Is(err, domain.ErrOrbitLocked):
		respondError(w, http.StatusUnprocessableEntity, domain.ErrMsgOrbitLocked)
	case errors.Is(err, domain.ErrInvalidSlot):
		respondError(w, http.StatusUnprocessableEntity, domain.ErrMsgInvalidSlot)
	case errors.Is(err, domain.ErrRequirementsNotMet):
		respondError(w, http.StatusUnprocessableEntity, domain.ErrMsgRequirementsNotMet)
	default:
		slog.Error("unexpected error in handler", "error", err)
		respondError(w, http.StatusInternalServerError, "something went wrong")
	}
}
