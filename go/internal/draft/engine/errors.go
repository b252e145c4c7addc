package engine

import "errors"

// Rejection errors for session commands. All are synchronous and
// side-effect-free: a rejected command never changes session state, and the
// engine never retries on the caller's behalf.
var (
	// ErrInvalidTurn reports a pick command from a slot that is not on the
	// clock.
	ErrInvalidTurn = errors.New("engine: slot is not on the clock")

	// ErrPlayerUnavailable reports a target player that is unknown or
	// already drafted.
	ErrPlayerUnavailable = errors.New("engine: player is not available")

	// ErrStaleTurn reports losing the manual-vs-autopick race: the turn the
	// command addressed has already been resolved. Callers should refresh
	// their snapshot and move on, not retry.
	ErrStaleTurn = errors.New("engine: turn already resolved")

	// ErrQueueReorderInvalid reports a reorder that is not a permutation of
	// the queue's current contents.
	ErrQueueReorderInvalid = errors.New("engine: reorder is not a permutation of the queue")

	// ErrSessionNotActive reports a command against a session in a state
	// that cannot accept it.
	ErrSessionNotActive = errors.New("engine: session is not active")

	// ErrUnknownUser reports a queue command for a user without a draft
	// slot in the session.
	ErrUnknownUser = errors.New("engine: user has no slot in this session")

	// ErrPoolExhausted reports the fatal inconsistency of an empty
	// available pool while picks remain. It force-completes the session.
	ErrPoolExhausted = errors.New("engine: available pool exhausted with picks remaining")
)
