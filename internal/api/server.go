// Package api exposes the search engine over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"sermonsearch/config"
	"sermonsearch/internal/domain"
	"sermonsearch/internal/port"
	"sermonsearch/internal/usecase"
)

type Server struct {
	searcher *usecase.Searcher
	vectors  port.VectorStore
	cfg      *config.Config
	log      *slog.Logger
}

func NewServer(searcher *usecase.Searcher, vectors port.VectorStore, cfg *config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		searcher: searcher,
		vectors:  vectors,
		cfg:      cfg,
		log:      log,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}

	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := s.searcher.Search(req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status string         `json:"status"`
	Pools  map[string]int `json:"pools"`
}

// handleHealth reports per-pool chunk counts. A count failure degrades
// that pool to -1 rather than failing the check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}

	pools := make(map[string]int, len(domain.PoolOrder))
	for _, pool := range domain.PoolOrder {
		n, err := s.vectors.Count(s.cfg.CollectionFor(string(pool)))
		if err != nil {
			s.log.Warn("pool count failed", "pool", pool, "error", err)
			n = -1
		}
		pools[string(pool)] = n
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Pools: pools})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
