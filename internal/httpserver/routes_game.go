// internal/httpserver/routes_game.go
//
// HTTP routes for the guessing game.
// Exposes five endpoints:
//   - POST /game/new   → start (or resume) a session and load its first question
//   - POST /game/guess → submit a guess for the current question
//   - POST /game/next  → advance to the next question
//   - POST /game/retry → re-attempt loading after a fetch failure
//   - GET  /game/view  → current view snapshot (idempotent)
//
// Every response carries the full view so the page repaints all regions
// from one payload. Sessions belong to the anonymous browser cookie; a
// browser asking for a new game while one is unfinished resumes it.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/totototosssss/num/internal/game"
	"github.com/totototosssss/num/internal/store"
)

// gameRes is the envelope for every game endpoint response.
type gameRes struct {
	GameID string    `json:"gameId"`
	View   game.View `json:"view"`
}

// gameReq carries the session reference plus, for /game/guess, the guess.
type gameReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

// mountGame registers all /game routes.
func (s *Server) mountGame() {
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Post("/game/next", s.handleNext)
	s.r.Post("/game/retry", s.handleRetry)
	s.r.Get("/game/view", s.handleView)
}

// handleNewGame starts a fresh session seeded from the pool, or resumes the
// browser's unfinished one.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	owner := s.ensureAnonID(w, r)

	if sess, err := s.store.FindByOwner(r.Context(), owner); err == nil && !sess.Done() {
		_ = json.NewEncoder(w).Encode(gameRes{GameID: sess.ID, View: sess.View()})
		return
	}

	sess := s.engine.NewSession(owner, s.pool)
	if err := s.engine.Advance(r.Context(), sess); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("advance interrupted")
		http.Error(w, `{"error":"interrupted"}`, http.StatusServiceUnavailable)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(gameRes{GameID: sess.ID, View: sess.View()})
}

// handleGuess submits a guess for the session's current question.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req gameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.loadSession(w, r, req.GameID)
	if !ok {
		return
	}
	s.engine.Submit(sess, req.Guess)
	_ = json.NewEncoder(w).Encode(gameRes{GameID: sess.ID, View: sess.View()})
}

// handleNext advances the session to its next question.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	var req gameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.loadSession(w, r, req.GameID)
	if !ok {
		return
	}
	if err := s.engine.Advance(r.Context(), sess); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("advance interrupted")
		http.Error(w, `{"error":"interrupted"}`, http.StatusServiceUnavailable)
		return
	}
	_ = json.NewEncoder(w).Encode(gameRes{GameID: sess.ID, View: sess.View()})
}

// handleRetry re-attempts loading after a failure; no-op outside the error
// phase.
func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	var req gameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.loadSession(w, r, req.GameID)
	if !ok {
		return
	}
	if err := s.engine.Retry(r.Context(), sess); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("retry interrupted")
		http.Error(w, `{"error":"interrupted"}`, http.StatusServiceUnavailable)
		return
	}
	_ = json.NewEncoder(w).Encode(gameRes{GameID: sess.ID, View: sess.View()})
}

// handleView returns the current view without mutating anything.
// With no gameId, falls back to the browser's current session.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	owner := s.ensureAnonID(w, r)
	id := r.URL.Query().Get("gameId")

	var sess *game.Session
	var ok bool
	if id != "" {
		sess, ok = s.loadSession(w, r, id)
		if !ok {
			return
		}
	} else {
		found, err := s.store.FindByOwner(r.Context(), owner)
		if err != nil {
			http.Error(w, `{"error":"no_session"}`, http.StatusNotFound)
			return
		}
		sess = found
	}
	_ = json.NewEncoder(w).Encode(gameRes{GameID: sess.ID, View: sess.View()})
}

// loadSession fetches a session and checks it belongs to the caller.
// Writes the error response itself when the lookup fails.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request, id string) (*game.Session, bool) {
	if id == "" {
		http.Error(w, `{"error":"missing_game_id"}`, http.StatusBadRequest)
		return nil, false
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error().Err(err).Str("gameId", id).Msg("load session")
		}
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	if owner := s.ensureAnonID(w, r); sess.Owner != owner {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return sess, true
}
