// Package engine owns the live state of a draft session: the pick-timer
// state machine, the autopick fallback, the per-user queues, and the
// notable-events log. All mutating operations on a session are serialized
// through one mutex, so a session is a sequentially-consistent state
// machine; many sessions run independently in parallel.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/draftday/warroom/go/internal/catalog"
	"github.com/draftday/warroom/go/internal/draft/events"
	"github.com/draftday/warroom/go/internal/draft/needs"
	"github.com/draftday/warroom/go/internal/draft/notable"
	"github.com/draftday/warroom/go/internal/draft/order"
	"github.com/draftday/warroom/go/internal/draft/queue"
	"github.com/draftday/warroom/go/internal/draft/store"
	"github.com/draftday/warroom/go/internal/models"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Config carries the engine's tunable behavior.
type Config struct {
	SecondsPerPick int            `yaml:"seconds_per_pick"`
	Needs          needs.Config   `yaml:"needs"`
	Notable        notable.Config `yaml:"notable"`
}

// DefaultConfig is a 90-second clock with the evaluator and detector
// defaults.
func DefaultConfig() Config {
	return Config{
		SecondsPerPick: 90,
		Needs:          needs.DefaultConfig(),
		Notable:        notable.DefaultConfig(),
	}
}

// Deps are the collaborators a session needs. Catalog is required; Clock
// defaults to the real clock, Sink to a no-op, Strategy to QueueNeedsStrategy.
type Deps struct {
	Catalog  *catalog.Catalog
	Clock    clockwork.Clock
	Sink     events.Sink
	Store    store.Store
	Strategy AutoPickStrategy
	Logger   zerolog.Logger
}

// CreateSessionRequest describes a new draft.
type CreateSessionRequest struct {
	ID             uuid.UUID
	DraftOrder     []uuid.UUID // user per slot; slot 1 is index 0
	TotalRounds    int
	SecondsPerPick int // 0 means the config default
}

// Session is the aggregate root for one draft. All exported methods are
// safe for concurrent use.
type Session struct {
	mu sync.Mutex

	model    models.DraftSession
	picks    []models.Pick
	rosters  map[int]*models.Roster
	drafted  map[uuid.UUID]bool
	notables []models.NotableEvent
	queues   *queue.Set

	// pausedRemaining is the countdown time frozen by Pause, reapplied by
	// Resume.
	pausedRemaining time.Duration

	catalog   *catalog.Catalog
	evaluator *needs.Evaluator
	detector  *notable.Detector
	strat     AutoPickStrategy
	clock     clockwork.Clock
	sink      events.Sink
	store     store.Store
	logger    zerolog.Logger

	// wakeCh nudges the runner whenever the deadline may have changed.
	wakeCh chan struct{}
}

// NewSession validates the request and builds a session in the scheduled
// state. The catalog must be able to cover the whole draft.
func NewSession(req CreateSessionRequest, cfg Config, deps Deps) (*Session, error) {
	if len(req.DraftOrder) < 1 {
		return nil, fmt.Errorf("draft order must name at least one slot")
	}
	seen := make(map[uuid.UUID]bool, len(req.DraftOrder))
	for _, id := range req.DraftOrder {
		if seen[id] {
			return nil, fmt.Errorf("duplicate user %s in draft order", id)
		}
		seen[id] = true
	}
	if req.TotalRounds < 1 {
		return nil, fmt.Errorf("total rounds must be positive")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("player catalog is required")
	}
	secondsPerPick := req.SecondsPerPick
	if secondsPerPick == 0 {
		secondsPerPick = cfg.SecondsPerPick
	}
	if secondsPerPick < 1 {
		return nil, fmt.Errorf("seconds per pick must be positive")
	}
	totalPicks := req.TotalRounds * len(req.DraftOrder)
	if deps.Catalog.Len() < totalPicks {
		return nil, fmt.Errorf("catalog has %d players but the draft needs %d", deps.Catalog.Len(), totalPicks)
	}

	id := req.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	s := newSessionShell(cfg, deps)
	s.model = models.DraftSession{
		ID:     id,
		Status: models.SessionStatusScheduled,
		Settings: models.SessionSettings{
			TotalRounds:    req.TotalRounds,
			SecondsPerPick: secondsPerPick,
			DraftOrder:     append([]uuid.UUID(nil), req.DraftOrder...),
		},
		CurrentPick: 1,
		CreatedAt:   s.clock.Now(),
	}
	s.initRosters()
	return s, nil
}

// Restore rebuilds a session from a stored record, recomputing the derived
// state (rosters, drafted set) from the pick log.
func Restore(rec *store.SessionRecord, cfg Config, deps Deps) (*Session, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("player catalog is required")
	}

	s := newSessionShell(cfg, deps)
	s.model = rec.Session
	s.initRosters()
	s.queues.Restore(rec.Queues)
	s.notables = append([]models.NotableEvent(nil), rec.NotableEvents...)
	s.pausedRemaining = rec.PausedRemaining

	for _, pick := range rec.Picks {
		player, ok := deps.Catalog.Get(pick.PlayerID)
		if !ok {
			return nil, fmt.Errorf("pick %d references unknown player %s", pick.PickNumber, pick.PlayerID)
		}
		s.picks = append(s.picks, pick)
		s.rosters[pick.Slot].Add(pick, player.Position)
		s.drafted[pick.PlayerID] = true
	}
	return s, nil
}

func newSessionShell(cfg Config, deps Deps) *Session {
	clk := deps.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	sink := deps.Sink
	if sink == nil {
		sink = events.NewLogSink(deps.Logger)
	}
	evaluator := needs.NewEvaluator(cfg.Needs)
	strat := deps.Strategy
	if strat == nil {
		strat = NewQueueNeedsStrategy(evaluator)
	}
	return &Session{
		rosters:   make(map[int]*models.Roster),
		drafted:   make(map[uuid.UUID]bool),
		queues:    queue.NewSet(),
		catalog:   deps.Catalog,
		evaluator: evaluator,
		detector:  notable.NewDetector(cfg.Notable),
		strat:     strat,
		clock:     clk,
		sink:      sink,
		store:     deps.Store,
		logger:    deps.Logger,
		wakeCh:    make(chan struct{}, 1),
	}
}

func (s *Session) initRosters() {
	for slot := 1; slot <= s.model.Settings.TeamCount(); slot++ {
		s.rosters[slot] = models.NewRoster(slot)
	}
}

// ID returns the session ID.
func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.ID
}

// StartTimer moves a scheduled session to active and puts pick 1 on the
// clock.
func (s *Session) StartTimer(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model.Status != models.SessionStatusScheduled {
		return ErrSessionNotActive
	}

	now := s.clock.Now()
	s.model.Status = models.SessionStatusActive
	s.model.StartedAt = &now
	deadline := now.Add(s.pickDuration())
	s.model.TimerDeadline = &deadline

	s.logger.Info().
		Str("session_id", s.model.ID.String()).
		Int("total_picks", s.model.Settings.TotalPicks()).
		Msg("draft clock started")

	s.emit(ctx, events.TypeSessionStarted, events.SessionStartedPayload{
		SessionID:   s.model.ID.String(),
		StartedAt:   now,
		TotalRounds: s.model.Settings.TotalRounds,
		TotalPicks:  s.model.Settings.TotalPicks(),
	})
	s.emitPickStarted(ctx, now, deadline)
	s.persist(ctx)
	s.wake()
	return nil
}

// CommitManualPick commits a selection by the slot currently on the clock.
// It loses to timer expiry: once the deadline has passed the turn belongs
// to the autopick transition and the manual attempt gets ErrStaleTurn.
func (s *Session) CommitManualPick(ctx context.Context, slot int, playerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model.Status != models.SessionStatusActive {
		return ErrSessionNotActive
	}
	if s.model.TimerDeadline != nil && !s.clock.Now().Before(*s.model.TimerDeadline) {
		return ErrStaleTurn
	}
	if slot != order.PickerOf(s.model.CurrentPick, s.model.Settings.TeamCount()) {
		return ErrInvalidTurn
	}
	if s.drafted[playerID] || !s.catalog.Has(playerID) {
		return ErrPlayerUnavailable
	}

	s.commitPick(ctx, slot, playerID, false)
	return nil
}

// autopickDue resolves a timer expiry for the given pick number. The runner
// calls it after the deadline passes; if a manual pick won the race the
// attempt reports ErrStaleTurn and is discarded.
func (s *Session) autopickDue(ctx context.Context, pickNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model.Status != models.SessionStatusActive {
		return ErrSessionNotActive
	}
	if s.model.CurrentPick != pickNumber {
		return ErrStaleTurn
	}
	deadline := s.model.TimerDeadline
	if deadline == nil || s.clock.Now().Before(*deadline) {
		// Woken early; the runner will reschedule.
		return nil
	}

	slot := order.PickerOf(pickNumber, s.model.Settings.TeamCount())
	playerID, err := s.strat.SelectPlayer(s.selectionFor(slot))
	if err != nil {
		if errors.Is(err, ErrPoolExhausted) {
			// Invariant violation: picks remain but nothing to draft.
			// Force-complete instead of looping; operators get the log line.
			s.logger.Error().
				Str("session_id", s.model.ID.String()).
				Int("pick_number", pickNumber).
				Msg("available pool exhausted with picks remaining; force-completing session")
			s.complete(ctx, s.clock.Now())
			s.persist(ctx)
			s.wake()
			return ErrPoolExhausted
		}
		return fmt.Errorf("autopick selection: %w", err)
	}

	s.commitPick(ctx, slot, playerID, true)
	return nil
}

func (s *Session) selectionFor(slot int) Selection {
	return Selection{
		Slot:           slot,
		Round:          order.RoundOf(s.model.CurrentPick, s.model.Settings.TeamCount()),
		PositionCounts: s.rosters[slot].PositionCounts,
		Queued:         s.queues.Get(s.model.Settings.UserAt(slot)).Players(),
		Available:      s.catalog.Available(s.drafted),
	}
}

// commitPick appends the pick, updates every derived structure, raises
// notable events, and either arms the next pick's countdown or completes
// the session. Caller holds the lock.
func (s *Session) commitPick(ctx context.Context, slot int, playerID uuid.UUID, isAutopick bool) {
	now := s.clock.Now()
	player, _ := s.catalog.Get(playerID)
	teamCount := s.model.Settings.TeamCount()

	pick := models.Pick{
		ID:         uuid.New(),
		SessionID:  s.model.ID,
		PickNumber: s.model.CurrentPick,
		Round:      order.RoundOf(s.model.CurrentPick, teamCount),
		Slot:       slot,
		PlayerID:   playerID,
		IsAutopick: isAutopick,
		PickedAt:   now,
	}

	s.picks = append(s.picks, pick)
	s.rosters[slot].Add(pick, player.Position)
	s.drafted[playerID] = true

	// Drain the player from every queue; owners other than the drafter get
	// queue alerts.
	drafter := s.model.Settings.UserAt(slot)
	var alertOwners []uuid.UUID
	for _, owner := range s.queues.DrainDrafted(playerID) {
		if owner != drafter {
			alertOwners = append(alertOwners, owner)
		}
	}

	raised := s.detector.OnPick(pick, player.ADP, alertOwners, now)
	s.notables = append(s.notables, raised...)

	s.logger.Info().
		Str("session_id", s.model.ID.String()).
		Int("pick_number", pick.PickNumber).
		Int("slot", slot).
		Str("player_id", playerID.String()).
		Bool("autopick", isAutopick).
		Msg("pick committed")

	s.emit(ctx, events.TypePickCommitted, events.PickCommittedPayload{
		SessionID:  s.model.ID.String(),
		PickID:     pick.ID.String(),
		PickNumber: pick.PickNumber,
		Round:      pick.Round,
		Slot:       pick.Slot,
		PlayerID:   playerID.String(),
		PlayerName: player.FullName,
		IsAutopick: isAutopick,
		PickedAt:   now,
	})
	for _, ev := range raised {
		s.emit(ctx, events.TypeNotableEventRaised, events.NotableEventRaisedPayload{
			SessionID: s.model.ID.String(),
			Event:     ev,
		})
	}

	s.model.CurrentPick++
	if s.model.CurrentPick > s.model.Settings.TotalPicks() {
		s.complete(ctx, now)
	} else {
		deadline := now.Add(s.pickDuration())
		s.model.TimerDeadline = &deadline
		s.emitPickStarted(ctx, now, deadline)
	}

	s.persist(ctx)
	s.wake()
}

// complete finalizes the session. Caller holds the lock.
func (s *Session) complete(ctx context.Context, now time.Time) {
	s.model.Status = models.SessionStatusCompleted
	s.model.CompletedAt = &now
	s.model.TimerDeadline = nil

	s.logger.Info().
		Str("session_id", s.model.ID.String()).
		Int("total_picks", len(s.picks)).
		Msg("draft completed")

	s.emit(ctx, events.TypeSessionCompleted, events.SessionCompletedPayload{
		SessionID:   s.model.ID.String(),
		CompletedAt: now,
		TotalPicks:  len(s.picks),
	})
}

// Pause freezes the countdown, preserving the remaining duration.
func (s *Session) Pause(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model.Status != models.SessionStatusActive {
		return ErrSessionNotActive
	}

	now := s.clock.Now()
	s.pausedRemaining = 0
	if s.model.TimerDeadline != nil {
		if remaining := s.model.TimerDeadline.Sub(now); remaining > 0 {
			s.pausedRemaining = remaining
		}
	}
	s.model.Status = models.SessionStatusPaused
	s.model.TimerDeadline = nil

	s.logger.Info().
		Str("session_id", s.model.ID.String()).
		Dur("remaining", s.pausedRemaining).
		Msg("draft paused")

	s.emit(ctx, events.TypeSessionPaused, events.SessionPausedPayload{
		SessionID:    s.model.ID.String(),
		PausedAt:     now,
		RemainingSec: s.pausedRemaining.Seconds(),
	})
	s.persist(ctx)
	s.wake()
	return nil
}

// Resume reapplies the remaining duration captured at pause.
func (s *Session) Resume(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model.Status != models.SessionStatusPaused {
		return ErrSessionNotActive
	}

	now := s.clock.Now()
	remaining := s.pausedRemaining
	if remaining <= 0 {
		remaining = s.pickDuration()
	}
	deadline := now.Add(remaining)
	s.model.Status = models.SessionStatusActive
	s.model.TimerDeadline = &deadline
	s.pausedRemaining = 0

	s.logger.Info().
		Str("session_id", s.model.ID.String()).
		Time("deadline", deadline).
		Msg("draft resumed")

	s.emit(ctx, events.TypeSessionResumed, events.SessionResumedPayload{
		SessionID: s.model.ID.String(),
		ResumedAt: now,
		TimeoutAt: deadline,
	})
	s.persist(ctx)
	s.wake()
	return nil
}

// EnqueuePlayer appends a player to the user's queue. Queuing a drafted or
// already-queued player is a silent no-op, matching how clients race the
// live feed.
func (s *Session) EnqueuePlayer(ctx context.Context, userID, playerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.queueCommandAllowed(userID); err != nil {
		return err
	}
	if !s.catalog.Has(playerID) {
		return ErrPlayerUnavailable
	}
	if s.drafted[playerID] {
		return nil
	}

	s.queues.Get(userID).Enqueue(playerID)
	s.persist(ctx)
	return nil
}

// RemoveFromQueue removes the queue entry at index.
func (s *Session) RemoveFromQueue(ctx context.Context, userID uuid.UUID, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.queueCommandAllowed(userID); err != nil {
		return err
	}
	if err := s.queues.Get(userID).Remove(index); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// ReorderQueue replaces the user's queue order with a permutation of its
// current contents.
func (s *Session) ReorderQueue(ctx context.Context, userID uuid.UUID, newOrder []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.queueCommandAllowed(userID); err != nil {
		return err
	}
	if err := s.queues.Get(userID).Reorder(newOrder); err != nil {
		if errors.Is(err, queue.ErrNotPermutation) {
			return ErrQueueReorderInvalid
		}
		return err
	}
	s.persist(ctx)
	return nil
}

func (s *Session) queueCommandAllowed(userID uuid.UUID) error {
	if s.model.Status == models.SessionStatusCompleted {
		return ErrSessionNotActive
	}
	if s.model.Settings.SlotOf(userID) == 0 {
		return ErrUnknownUser
	}
	return nil
}

// Snapshot projects the session for observers. The result shares no
// mutable state with the engine.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	teamCount := s.model.Settings.TeamCount()
	totalPicks := s.model.Settings.TotalPicks()
	now := s.clock.Now()

	snap := Snapshot{
		SessionID:     s.model.ID,
		Status:        s.model.Status,
		TeamCount:     teamCount,
		TotalRounds:   s.model.Settings.TotalRounds,
		TotalPicks:    totalPicks,
		CurrentPick:   s.model.CurrentPick,
		Picks:         append([]models.Pick(nil), s.picks...),
		Queues:        s.queues.All(),
		AvailablePool: s.catalog.Available(s.drafted),
		NotableEvents: append([]models.NotableEvent(nil), s.notables...),
		Rosters:       make(map[int]*models.Roster, teamCount),
		PositionNeeds: make(map[int][]needs.PositionNeed, teamCount),
		PicksAway:     make(map[int]int, teamCount),
	}
	catalog.SortPlayers(snap.AvailablePool)

	if s.model.TimerDeadline != nil {
		d := *s.model.TimerDeadline
		snap.TimerDeadline = &d
		if remaining := d.Sub(now); remaining > 0 {
			snap.TimeRemainingSec = int(remaining.Seconds())
		}
	}

	drafting := s.model.CurrentPick <= totalPicks
	round := s.model.Settings.TotalRounds
	if drafting {
		round = order.RoundOf(s.model.CurrentPick, teamCount)
		snap.Round = round
		snap.OnClockSlot = order.PickerOf(s.model.CurrentPick, teamCount)
		snap.OnClockUser = s.model.Settings.UserAt(snap.OnClockSlot)
	}

	for slot := 1; slot <= teamCount; slot++ {
		snap.Rosters[slot] = s.rosters[slot].Clone()
		snap.PositionNeeds[slot] = s.evaluator.Evaluate(s.rosters[slot].PositionCounts, round)
		if drafting {
			snap.PicksAway[slot] = order.PicksAway(s.model.CurrentPick, slot, teamCount)
		}
	}

	return snap
}

// deadlineState tells the runner what to wait for: the armed deadline and
// the pick it belongs to. ok is false when there is nothing to time
// (scheduled, paused, or completed).
func (s *Session) deadlineState() (deadline time.Time, pickNumber int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model.Status != models.SessionStatusActive || s.model.TimerDeadline == nil {
		return time.Time{}, 0, false
	}
	return *s.model.TimerDeadline, s.model.CurrentPick, true
}

func (s *Session) completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Status == models.SessionStatusCompleted
}

func (s *Session) pickDuration() time.Duration {
	return time.Duration(s.model.Settings.SecondsPerPick) * time.Second
}

func (s *Session) emitPickStarted(ctx context.Context, startedAt, deadline time.Time) {
	teamCount := s.model.Settings.TeamCount()
	slot := order.PickerOf(s.model.CurrentPick, teamCount)
	s.emit(ctx, events.TypePickStarted, events.PickStartedPayload{
		SessionID:      s.model.ID.String(),
		PickNumber:     s.model.CurrentPick,
		Round:          order.RoundOf(s.model.CurrentPick, teamCount),
		Slot:           slot,
		UserID:         s.model.Settings.UserAt(slot).String(),
		StartedAt:      startedAt,
		TimeoutAt:      deadline,
		SecondsPerPick: s.model.Settings.SecondsPerPick,
	})
}

// emit publishes one feed item. Publishing happens under the session lock
// so the feed order matches the transition order.
func (s *Session) emit(ctx context.Context, typ events.Type, payload any) {
	env, err := events.NewEnvelope(s.model.ID, typ, s.clock.Now(), payload)
	if err != nil {
		s.logger.Error().Err(err).Str("event_type", string(typ)).Msg("failed to build event envelope")
		return
	}
	if err := s.sink.Publish(ctx, env); err != nil {
		s.logger.Error().Err(err).Str("event_type", string(typ)).Msg("failed to publish event")
	}
}

// persist saves the record when a store is configured. Save failures are
// logged, not fatal: the in-memory session stays authoritative.
func (s *Session) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	rec := store.SessionRecord{
		Session:         s.model,
		Picks:           append([]models.Pick(nil), s.picks...),
		Queues:          s.queues.All(),
		NotableEvents:   append([]models.NotableEvent(nil), s.notables...),
		PausedRemaining: s.pausedRemaining,
	}
	if err := s.store.Save(ctx, &rec); err != nil {
		s.logger.Error().Err(err).Str("session_id", s.model.ID.String()).Msg("failed to save session")
	}
}

func (s *Session) wake() {
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
}
