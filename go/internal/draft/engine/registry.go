package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/draftday/warroom/go/internal/draft/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrSessionNotFound is returned by Registry lookups for unknown sessions.
var ErrSessionNotFound = fmt.Errorf("draft session not found")

// Registry is the arena of live sessions. Each session gets a runner
// goroutine for its clock; sessions not in memory are recovered from the
// store on lookup.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	runners  map[uuid.UUID]*Runner

	cfg    Config
	deps   Deps
	logger zerolog.Logger

	// runCtx outlives any request context; runners are bound to it so a
	// session's clock keeps running after the creating request returns.
	runCtx    context.Context
	cancelRun context.CancelFunc
}

// NewRegistry builds an empty registry. The deps are shared by every
// session it creates or recovers.
func NewRegistry(cfg Config, deps Deps) *Registry {
	runCtx, cancel := context.WithCancel(context.Background())
	return &Registry{
		sessions:  make(map[uuid.UUID]*Session),
		runners:   make(map[uuid.UUID]*Runner),
		cfg:       cfg,
		deps:      deps,
		logger:    deps.Logger,
		runCtx:    runCtx,
		cancelRun: cancel,
	}
}

// CreateSession builds a new scheduled session, registers it, and starts
// its runner.
func (r *Registry) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	session, err := NewSession(req, r.cfg, r.deps)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[session.ID()]; exists {
		return nil, fmt.Errorf("session %s already registered", session.ID())
	}
	r.register(session)

	session.mu.Lock()
	session.persist(ctx)
	session.mu.Unlock()
	r.logger.Info().
		Str("session_id", session.ID().String()).
		Int("team_count", len(req.DraftOrder)).
		Int("total_rounds", req.TotalRounds).
		Msg("draft session created")
	return session, nil
}

// Get returns the live session, recovering it from the store if needed.
func (r *Registry) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return session, nil
	}
	return r.recover(ctx, id)
}

func (r *Registry) recover(ctx context.Context, id uuid.UUID) (*Session, error) {
	if r.deps.Store == nil {
		return nil, ErrSessionNotFound
	}

	rec, err := r.deps.Store.Load(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another caller may have recovered it while we were loading.
	if session, ok := r.sessions[id]; ok {
		return session, nil
	}

	session, err := Restore(rec, r.cfg, r.deps)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	r.register(session)

	r.logger.Info().
		Str("session_id", id.String()).
		Int("picks", len(rec.Picks)).
		Msg("draft session recovered from store")
	return session, nil
}

// register wires the session into the maps and launches its runner.
// Caller holds the write lock.
func (r *Registry) register(session *Session) {
	id := session.ID()
	runner := NewRunner(session)
	r.sessions[id] = session
	r.runners[id] = runner

	go func() {
		runner.Run(r.runCtx)
		r.mu.Lock()
		delete(r.runners, id)
		r.mu.Unlock()
	}()
}

// Sessions returns every session currently resident in memory, in no
// particular order.
func (r *Registry) Sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

// Shutdown stops every runner and waits for them to exit.
func (r *Registry) Shutdown() {
	r.cancelRun()
	r.mu.RLock()
	runners := make([]*Runner, 0, len(r.runners))
	for _, runner := range r.runners {
		runners = append(runners, runner)
	}
	r.mu.RUnlock()

	for _, runner := range runners {
		<-runner.Done()
	}
}
