package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bwwq/fate-roulette/auth"
	"github.com/bwwq/fate-roulette/stats"
	"github.com/bwwq/fate-roulette/storage"
)

// Handler holds dependencies for API handlers.
type Handler struct {
	Store storage.StatsStore
	Auth  *auth.Validator
}

// NewHandler creates a new API handler with the given dependencies. store
// and validator may be nil.
func NewHandler(store storage.StatsStore, validator *auth.Validator) *Handler {
	return &Handler{Store: store, Auth: validator}
}

// Routes registers the API endpoints on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/stats", h.Stats)
	mux.HandleFunc("/api/progress", h.Progress)
	mux.HandleFunc("/api/history", h.History)
}

// CORS sets CORS headers on the response. Call before writing body.
func CORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return true
	}
	return false
}

// begin handles CORS, the method check and identification. It returns the
// profile, or "" after writing an error response.
func (h *Handler) begin(w http.ResponseWriter, r *http.Request) string {
	if CORS(w, r) {
		return ""
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return ""
	}
	profile, ok := h.Auth.ProfileFromRequest(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return ""
	}
	return profile
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "tag", "api", "err", err)
	}
}

// StatsResponse is the JSON structure for /api/stats.
type StatsResponse struct {
	Profile string      `json:"profile"`
	Games   int         `json:"games"`
	Stats   stats.Tally `json:"stats"`
}

// Stats returns the accumulated statistics of the caller.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	profile := h.begin(w, r)
	if profile == "" {
		return
	}
	tally := stats.NewTally()
	if h.Store != nil {
		var err error
		tally, err = h.Store.LoadStats(r.Context(), profile)
		if err != nil {
			slog.Error("LoadStats", "tag", "api", "profile", profile, "err", err)
			http.Error(w, "failed to load stats", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, StatsResponse{Profile: profile, Games: tally.Games(), Stats: tally})
}

// ProgressResponse is the JSON structure for /api/progress.
type ProgressResponse struct {
	Profile  string `json:"profile"`
	Unlocked int    `json:"unlocked"`
}

// Progress returns the caller's unlocked difficulty level.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	profile := h.begin(w, r)
	if profile == "" {
		return
	}
	level := storage.InitialLevel
	if h.Store != nil {
		var err error
		level, err = h.Store.LoadProgress(r.Context(), profile)
		if err != nil {
			slog.Error("LoadProgress", "tag", "api", "profile", profile, "err", err)
			http.Error(w, "failed to load progress", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, ProgressResponse{Profile: profile, Unlocked: level})
}

// History returns the caller's most recent matches.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	profile := h.begin(w, r)
	if profile == "" {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list := []storage.MatchRecord{}
	if h.Store != nil {
		var err error
		list, err = h.Store.ListMatches(r.Context(), profile, limit)
		if err != nil {
			slog.Error("ListMatches", "tag", "api", "profile", profile, "err", err)
			http.Error(w, "failed to load history", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, list)
}
