package engine

import (
	"context"
	"errors"
	"time"

	"github.com/draftday/warroom/go/internal/draft/events"
	"github.com/draftday/warroom/go/internal/draft/order"
	"github.com/draftday/warroom/go/internal/models"
	"github.com/jonboulle/clockwork"
)

// Runner drives one session's clock: it sleeps until the armed deadline,
// fires the autopick transition when it passes, and emits a TimerTick once
// per second while a pick is on the clock. It exits when the session
// completes or the context is canceled.
type Runner struct {
	session   *Session
	sessionID string
	clock     clockwork.Clock
	done      chan struct{}
}

// NewRunner builds a runner bound to the session's clock.
func NewRunner(session *Session) *Runner {
	return &Runner{
		session:   session,
		sessionID: session.ID().String(),
		clock:     session.clock,
		done:      make(chan struct{}),
	}
}

// Run blocks until the session completes or ctx is canceled.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)

	s := r.session
	timer := r.clock.NewTimer(time.Hour)
	stopAndDrainTimer(timer)
	ticker := r.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		deadline, pickNumber, armed := s.deadlineState()
		if !armed {
			if s.completed() {
				return
			}
			// Nothing to time; wait for a state change.
			select {
			case <-ctx.Done():
				return
			case <-s.wakeCh:
				continue
			}
		}

		wait := deadline.Sub(r.clock.Now())
		if wait <= 0 {
			r.fire(ctx, pickNumber)
			continue
		}

		stopAndDrainTimer(timer)
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return
		case <-timer.Chan():
			r.fire(ctx, pickNumber)
		case <-ticker.Chan():
			r.tick(ctx)
		case <-s.wakeCh:
			// Deadline may have moved; recompute.
		}
	}
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) fire(ctx context.Context, pickNumber int) {
	s := r.session
	err := s.autopickDue(ctx, pickNumber)
	switch {
	case err == nil:
	case errors.Is(err, ErrStaleTurn):
		// A manual pick won the race; nothing to do.
	case errors.Is(err, ErrSessionNotActive), errors.Is(err, ErrPoolExhausted):
	default:
		s.logger.Error().
			Err(err).
			Str("session_id", r.sessionID).
			Int("pick_number", pickNumber).
			Msg("autopick transition failed")
	}
}

// tick emits the once-per-second countdown event while a pick is live.
func (r *Runner) tick(ctx context.Context) {
	s := r.session
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.model.TimerDeadline
	if s.model.Status != models.SessionStatusActive || deadline == nil {
		return
	}
	remaining := deadline.Sub(s.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	s.emit(ctx, events.TypeTimerTick, events.TimerTickPayload{
		SessionID:        s.model.ID.String(),
		PickNumber:       s.model.CurrentPick,
		Slot:             order.PickerOf(s.model.CurrentPick, s.model.Settings.TeamCount()),
		TimeRemainingSec: int(remaining.Seconds()),
		TickedAt:         s.clock.Now(),
	})
}

// stopAndDrainTimer stops a timer and clears any value already delivered
// to its channel, so a later Reset starts clean.
func stopAndDrainTimer(t clockwork.Timer) {
	if !t.Stop() {
		select {
		case <-t.Chan():
		default:
		}
	}
}
