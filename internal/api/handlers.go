package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/momentum-labs/momentum/internal/domain"
)

// ─── Gamification endpoints (/api/*) ────────────────────────────────────────

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Summarize())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	state := s.engine.State()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": state.Achievements,
	})
}

func (s *Server) handleUnlockAchievement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	unlocked, err := s.engine.UnlockAchievement(id)
	switch {
	case errors.Is(err, domain.ErrAchievementNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, domain.ErrAchievementUnlocked):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, unlocked)
}

func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	state := s.engine.State()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rewards": state.Rewards,
	})
}

func (s *Server) handleClaimReward(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	claimed, err := s.engine.ClaimReward(id)
	switch {
	case errors.Is(err, domain.ErrRewardNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, domain.ErrRewardAlreadyClaimed):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, claimed)
}

// --- /api/tasks/complete ---

type taskCompleteRequest struct {
	Task        domain.Task `json:"task"`
	CompletedAt time.Time   `json:"completed_at"` // zero = now
	DayComplete bool        `json:"day_complete"`
}

func (s *Server) handleTaskComplete(w http.ResponseWriter, r *http.Request) {
	var req taskCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CompletedAt.IsZero() {
		req.CompletedAt = time.Now()
	}

	if err := s.engine.RecordTaskCompletion(req.Task, req.CompletedAt, req.DayComplete); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	unlocked, err := s.engine.EvaluateAndUnlockAchievements()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary":  s.engine.Summarize(),
		"unlocked": unlocked,
	})
}

// --- /api/timer/session ---

type timerSessionRequest struct {
	ElapsedSeconds int64 `json:"elapsed_seconds"`
}

func (s *Server) handleTimerSession(w http.ResponseWriter, r *http.Request) {
	var req timerSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.engine.RecordTimerSession(req.ElapsedSeconds); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	unlocked, err := s.engine.EvaluateAndUnlockAchievements()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary":  s.engine.Summarize(),
		"unlocked": unlocked,
	})
}

// ─── Sync endpoints ─────────────────────────────────────────────────────────

type enqueueRequest struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    json.RawMessage   `json:"body,omitempty"`
}

func (s *Server) handleSyncEnqueue(w http.ResponseWriter, r *http.Request) {
	var req enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.URL == "" || req.Method == "" {
		writeError(w, http.StatusBadRequest, "url and method are required")
		return
	}

	id, err := s.queue.Enqueue(domain.SyncOperation{
		URL:     req.URL,
		Method:  req.Method,
		Headers: req.Headers,
		Body:    req.Body,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

func (s *Server) handleSyncPending(w http.ResponseWriter, r *http.Request) {
	pending, err := s.queue.ListPending()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pending": pending,
		"count":   len(pending),
	})
}

func (s *Server) handleSyncDrain(w http.ResponseWriter, r *http.Request) {
	report, err := s.sync.Drain(r.Context())
	switch {
	case errors.Is(err, domain.ErrDrainInProgress):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSyncStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sync.Stats())
}
