package combat

import "errors"

// Sentinel errors returned by the dispatcher and resolver. Callers match
// them with errors.Is; wrapped messages carry the session and action
// context.
var (
	// ErrNotActive means no combat exists for the session, or it has ended.
	ErrNotActive = errors.New("combat is not active")

	// ErrInconsistentState means the turn order references a combatant
	// that is missing from the roster. It signals a caller-side bug.
	ErrInconsistentState = errors.New("combat state is inconsistent")

	// ErrUnknownAction means the dispatcher received an action id it does
	// not implement.
	ErrUnknownAction = errors.New("unknown combat action")

	// ErrValidation means an attack resolver input was out of range.
	// Out-of-range rolls are never clamped: masking them would hide RNG
	// or logic bugs.
	ErrValidation = errors.New("invalid attack input")
)
