package gateway

import (
	"net/http"
	"time"

	"github.com/draftday/warroom/go/internal/draft/engine"
	"github.com/draftday/warroom/go/internal/models"
	"github.com/google/uuid"
)

// SessionSummary is the list view of a resident session.
type SessionSummary struct {
	SessionID   string               `json:"session_id"`
	Status      models.SessionStatus `json:"status"`
	CurrentPick int                  `json:"current_pick"`
	Round       int                  `json:"round"`
	TeamCount   int                  `json:"team_count"`
	TotalRounds int                  `json:"total_rounds"`
	Deadline    *time.Time           `json:"timer_deadline,omitempty"`
}

// StateHandler serves snapshots over REST. Clients poll it on reconnect to
// resynchronize before resuming the WebSocket feed.
type StateHandler struct {
	registry *engine.Registry
}

// NewStateHandler creates a state handler backed by the session registry.
func NewStateHandler(registry *engine.Registry) *StateHandler {
	return &StateHandler{registry: registry}
}

// HandleGetState handles GET /api/sessions/{id}/state.
func (h *StateHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	session, err := h.registry.Get(r.Context(), sessionID)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	writeJSON(w, http.StatusOK, session.Snapshot())
}

// HandleListSessions handles GET /api/sessions.
func (h *StateHandler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.registry.Sessions()
	summaries := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		snap := s.Snapshot()
		summaries = append(summaries, SessionSummary{
			SessionID:   snap.SessionID.String(),
			Status:      snap.Status,
			CurrentPick: snap.CurrentPick,
			Round:       snap.Round,
			TeamCount:   snap.TeamCount,
			TotalRounds: snap.TotalRounds,
			Deadline:    snap.TimerDeadline,
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

// RegisterRoutes registers the state routes.
func (h *StateHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/sessions", h.HandleListSessions)
	mux.HandleFunc("GET /api/sessions/{id}/state", h.HandleGetState)
}
