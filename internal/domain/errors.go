package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	ErrMsgInsufficientFunds    = "insufficient chronos"
	ErrMsgUnknownArchetype     = "unknown card archetype"
	ErrMsgCardNotFound         = "card not found in inventory"
	ErrMsgOrbitLocked          = "orbit is locked"
	ErrMsgOrbitUnlocked        = "orbit already unlocked"
	ErrMsgInvalidSlot          = "invalid orbit slot"
	ErrMsgRequirementsNotMet   = "mission requirements not met"
	ErrMsgMissionCompleted     = "mission already completed"
	ErrMsgUnknownMission       = "unknown mission"
	ErrMsgUnknownBooster       = "unknown booster"
	ErrMsgAlreadyPurchased     = "listing already purchased or missing"
	ErrMsgPersistenceFailure   = "failed to persist state"
	ErrMsgCatalogUnavailable   = "card catalog unavailable"
	ErrMsgCorruptedState       = "corrupted persisted state"
)

// Common domain errors. Wrap with fmt.Errorf("%w: ...", err) for context.
var (
	ErrInsufficientFunds  = errors.New(ErrMsgInsufficientFunds)
	ErrUnknownArchetype   = errors.New(ErrMsgUnknownArchetype)
	ErrCardNotFound       = errors.New(ErrMsgCardNotFound)
	ErrOrbitLocked        = errors.New(ErrMsgOrbitLocked)
	ErrOrbitUnlocked      = errors.New(ErrMsgOrbitUnlocked)
	ErrInvalidSlot        = errors.New(ErrMsgInvalidSlot)
	ErrRequirementsNotMet = errors.New(ErrMsgRequirementsNotMet)
	ErrMissionCompleted   = errors.New(ErrMsgMissionCompleted)
	ErrUnknownMission     = errors.New(ErrMsgUnknownMission)
	ErrUnknownBooster     = errors.New(ErrMsgUnknownBooster)
	ErrAlreadyPurchased   = errors.New(ErrMsgAlreadyPurchased)
	ErrPersistenceFailure = errors.New(ErrMsgPersistenceFailure)
	ErrCatalogUnavailable = errors.New(ErrMsgCatalogUnavailable)
	ErrCorruptedState     = errors.New(ErrMsgCorruptedState)
)
