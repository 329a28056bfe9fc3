// Package server is the thin HTTP front-end: it holds session state across
// requests and forwards each message through one graph turn.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/replypilot/server/internal/assistant/graph"
	"github.com/replypilot/server/internal/assistant/model"
	"github.com/replypilot/server/internal/ui"
	logx "github.com/replypilot/server/pkg/logger"
)

type Server struct {
	runner   graph.Runner
	sessions model.SessionRepository
}

func New(runner graph.Runner, sessions model.SessionRepository) *Server {
	return &Server{runner: runner, sessions: sessions}
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.With(metricsMiddleware("/healthz")).Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1/sessions", func(r chi.Router) {
		r.With(metricsMiddleware("/v1/sessions")).Post("/", s.handleCreateSession)
		r.With(metricsMiddleware("/v1/sessions/{sessionID}/messages")).
			Post("/{sessionID}/messages", s.handleMessage)
		r.With(metricsMiddleware("/v1/sessions/{sessionID}")).
			Delete("/{sessionID}", s.handleDeleteSession)
	})

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	state := model.NewConversationState(uuid.NewString())
	if err := s.sessions.Save(r.Context(), state); err != nil {
		logx.Error().Err(err).Msg("failed to create session")
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, createSessionResponse{SessionID: state.SessionID})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(r.Context(), sessionID); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to delete session")
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	SessionID  string   `json:"session_id"`
	Intent     string   `json:"intent"`
	Replies    []string `json:"replies"`
	Draft      string   `json:"draft,omitempty"`
	DraftCount int      `json:"draft_count"`
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if strings.TrimSpace(sessionID) == "" {
		writeError(w, http.StatusBadRequest, "session id is required")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			state = model.NewConversationState(sessionID)
		} else {
			logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to load session")
			writeError(w, http.StatusInternalServerError, "failed to load session")
			return
		}
	}

	sink := &ui.CaptureSink{}
	out, err := s.runner.RunTurn(ui.WithSink(ctx, sink), state, req.Message)
	if err != nil {
		// Only fatal invariant violations escape the graph.
		logx.Error().Err(err).Str("session_id", sessionID).Msg("turn aborted")
		writeError(w, http.StatusInternalServerError, "turn aborted")
		return
	}
	turnsTotal.WithLabelValues(out.Intent.String()).Inc()

	if err := s.sessions.Save(ctx, out); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to save session")
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	resp := messageResponse{
		SessionID:  out.SessionID,
		Intent:     out.Intent.String(),
		Replies:    sink.Lines(),
		DraftCount: len(out.DraftHistory),
	}
	if d := out.CurrentDraft(); d != nil {
		resp.Draft = d.Content
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
