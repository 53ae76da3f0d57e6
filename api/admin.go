// Operator endpoints: running configuration and snapshot cache control.

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seenimoa/agritrade/internal/config"
)

// ConfigResponse is the JSON envelope returned by GET /api/v1/config.
type ConfigResponse struct {
	Config   *config.Config `json:"config"`
	CacheTTL int            `json:"cache_ttl_seconds"`
}

// CacheResponse lists the commodities whose cached snapshot was dropped.
// It is empty when nothing was cached.
type CacheResponse struct {
	Invalidated []string `json:"invalidated"`
}

// handleGetConfig returns the running configuration.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ConfigResponse{
			Config:   s.cfg,
			CacheTTL: int(s.provider.TTL().Seconds()),
		},
	})
}

// handleFlushCache drops every cached snapshot so the next request refetches.
func (s *Server) handleFlushCache(w http.ResponseWriter, r *http.Request) {
	dropped := s.provider.Flush()
	s.log.Info().Strs("commodities", dropped).Msg("snapshot cache flushed")
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    CacheResponse{Invalidated: dropped},
	})
}

// handleInvalidateCache drops the cached snapshot of one commodity.
func (s *Server) handleInvalidateCache(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "commodity")
	name, ok := s.provider.Catalog().Resolve(raw)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown commodity: "+raw)
		return
	}

	dropped := []string{}
	if s.provider.Invalidate(name) {
		dropped = append(dropped, name)
		s.log.Info().Str("commodity", name).Msg("snapshot invalidated")
	}
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    CacheResponse{Invalidated: dropped},
	})
}
