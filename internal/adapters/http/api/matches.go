// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/edruela/volleyball-simulator/internal/adapters/repository"
	"github.com/edruela/volleyball-simulator/internal/domain/dedupe"
	"github.com/edruela/volleyball-simulator/internal/domain/model"
)

// MatchDependencies defines the interface for asynchronous match
// submission and result retrieval.
type MatchDependencies interface {
	dedupe.Deduper
	Enqueue(ctx context.Context, req model.MatchRequest) bool
	GetMatch(ctx context.Context, matchID string) (model.MatchResult, error)
	RecentMatches(ctx context.Context, n int) ([]model.MatchResult, error)
}

// MatchesHandler handles match submission and retrieval requests.
type MatchesHandler struct {
	deps     MatchDependencies
	maxLimit int
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies, maxLimit int) *MatchesHandler {
	return &MatchesHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleMatches dispatches /matches requests by method:
// POST submits a match for async simulation, GET lists recent results.
func (h *MatchesHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePostMatch(w, r)
	case http.MethodGet:
		h.handleGetRecent(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handlePostMatch accepts a match request for async processing. The
// request id doubles as the idempotency key and the eventual match id.
func (h *MatchesHandler) handlePostMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_match"
	var req model.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.RequestID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing requestId")))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.RequestID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", MatchID: req.RequestID, Duplicate: true})
		return
	}

	// Try to enqueue for async processing
	if ok := h.deps.Enqueue(r.Context(), req); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), req.RequestID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", MatchID: req.RequestID, Duplicate: false})
}

// handleGetRecent handles GET /matches?limit=N requests.
func (h *MatchesHandler) handleGetRecent(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_recent_matches"
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	results, err := h.deps.RecentMatches(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// HandleGetMatch handles GET /matches/{match_id} requests.
func (h *MatchesHandler) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_match"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /matches/
	path := strings.TrimPrefix(r.URL.Path, "/matches/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	result, err := h.deps.GetMatch(r.Context(), path)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
