package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/draftday/warroom/go/internal/draft/engine"
	"github.com/draftday/warroom/go/internal/draft/queue"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CommandHandler exposes the engine's mutating operations over REST.
type CommandHandler struct {
	registry *engine.Registry
}

// NewCommandHandler creates a command handler backed by the session
// registry.
func NewCommandHandler(registry *engine.Registry) *CommandHandler {
	return &CommandHandler{registry: registry}
}

type createSessionRequest struct {
	DraftOrder     []uuid.UUID `json:"draft_order"`
	TotalRounds    int         `json:"total_rounds"`
	SecondsPerPick int         `json:"seconds_per_pick"`
}

type commitPickRequest struct {
	Slot     int       `json:"slot"`
	PlayerID uuid.UUID `json:"player_id"`
}

type enqueueRequest struct {
	UserID   uuid.UUID `json:"user_id"`
	PlayerID uuid.UUID `json:"player_id"`
}

type removeFromQueueRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Index  int       `json:"index"`
}

type reorderQueueRequest struct {
	UserID uuid.UUID   `json:"user_id"`
	Order  []uuid.UUID `json:"order"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// HandleCreateSession handles POST /api/sessions.
func (h *CommandHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	session, err := h.registry.CreateSession(r.Context(), engine.CreateSessionRequest{
		DraftOrder:     req.DraftOrder,
		TotalRounds:    req.TotalRounds,
		SecondsPerPick: req.SecondsPerPick,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusCreated, session.Snapshot())
}

// HandleStart handles POST /api/sessions/{id}/start.
func (h *CommandHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	h.sessionCommand(w, r, func(s *engine.Session) error {
		return s.StartTimer(r.Context())
	})
}

// HandlePause handles POST /api/sessions/{id}/pause.
func (h *CommandHandler) HandlePause(w http.ResponseWriter, r *http.Request) {
	h.sessionCommand(w, r, func(s *engine.Session) error {
		return s.Pause(r.Context())
	})
}

// HandleResume handles POST /api/sessions/{id}/resume.
func (h *CommandHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	h.sessionCommand(w, r, func(s *engine.Session) error {
		return s.Resume(r.Context())
	})
}

// HandleCommitPick handles POST /api/sessions/{id}/picks.
func (h *CommandHandler) HandleCommitPick(w http.ResponseWriter, r *http.Request) {
	var req commitPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.sessionCommand(w, r, func(s *engine.Session) error {
		return s.CommitManualPick(r.Context(), req.Slot, req.PlayerID)
	})
}

// HandleEnqueue handles POST /api/sessions/{id}/queue.
func (h *CommandHandler) HandleEnqueue(w http.ResponseWriter, r *http.Request) {
	var req enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.sessionCommand(w, r, func(s *engine.Session) error {
		return s.EnqueuePlayer(r.Context(), req.UserID, req.PlayerID)
	})
}

// HandleRemoveFromQueue handles POST /api/sessions/{id}/queue/remove.
func (h *CommandHandler) HandleRemoveFromQueue(w http.ResponseWriter, r *http.Request) {
	var req removeFromQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.sessionCommand(w, r, func(s *engine.Session) error {
		return s.RemoveFromQueue(r.Context(), req.UserID, req.Index)
	})
}

// HandleReorderQueue handles POST /api/sessions/{id}/queue/reorder.
func (h *CommandHandler) HandleReorderQueue(w http.ResponseWriter, r *http.Request) {
	var req reorderQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.sessionCommand(w, r, func(s *engine.Session) error {
		return s.ReorderQueue(r.Context(), req.UserID, req.Order)
	})
}

// sessionCommand resolves the session from the path, runs op, and writes
// either the refreshed snapshot or the mapped error.
func (h *CommandHandler) sessionCommand(w http.ResponseWriter, r *http.Request, op func(*engine.Session) error) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid session ID"))
		return
	}

	session, err := h.registry.Get(r.Context(), sessionID)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	if err := op(session); err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	writeJSON(w, http.StatusOK, session.Snapshot())
}

// RegisterRoutes registers the command routes.
func (h *CommandHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", h.HandleCreateSession)
	mux.HandleFunc("POST /api/sessions/{id}/start", h.HandleStart)
	mux.HandleFunc("POST /api/sessions/{id}/pause", h.HandlePause)
	mux.HandleFunc("POST /api/sessions/{id}/resume", h.HandleResume)
	mux.HandleFunc("POST /api/sessions/{id}/picks", h.HandleCommitPick)
	mux.HandleFunc("POST /api/sessions/{id}/queue", h.HandleEnqueue)
	mux.HandleFunc("POST /api/sessions/{id}/queue/remove", h.HandleRemoveFromQueue)
	mux.HandleFunc("POST /api/sessions/{id}/queue/reorder", h.HandleReorderQueue)
}

// statusForError maps engine errors onto HTTP statuses. Turn and
// availability conflicts are 409s so clients retry against fresh state;
// malformed queue commands are 422s.
func statusForError(err error) int {
	switch {
	case errors.Is(err, engine.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrUnknownUser):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrInvalidTurn),
		errors.Is(err, engine.ErrStaleTurn),
		errors.Is(err, engine.ErrPlayerUnavailable),
		errors.Is(err, engine.ErrSessionNotActive):
		return http.StatusConflict
	case errors.Is(err, engine.ErrQueueReorderInvalid),
		errors.Is(err, queue.ErrIndexOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// kindForError gives clients a stable machine-readable error kind.
func kindForError(err error) string {
	switch {
	case errors.Is(err, engine.ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, engine.ErrUnknownUser):
		return "unknown_user"
	case errors.Is(err, engine.ErrInvalidTurn):
		return "invalid_turn"
	case errors.Is(err, engine.ErrStaleTurn):
		return "stale_turn"
	case errors.Is(err, engine.ErrPlayerUnavailable):
		return "player_unavailable"
	case errors.Is(err, engine.ErrSessionNotActive):
		return "session_not_active"
	case errors.Is(err, engine.ErrQueueReorderInvalid):
		return "queue_reorder_invalid"
	case errors.Is(err, queue.ErrIndexOutOfRange):
		return "queue_index_out_of_range"
	default:
		return ""
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kindForError(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
