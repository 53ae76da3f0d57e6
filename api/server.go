// Package api provides the HTTP JSON API consumed by the trade dashboard.
//
// It exposes the commodity catalog, market snapshots, and ranked export
// analyses. Rendering is left to the client.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/seenimoa/agritrade/internal/analysis/trade"
	"github.com/seenimoa/agritrade/internal/config"
	"github.com/seenimoa/agritrade/internal/market"
	"github.com/seenimoa/agritrade/pkg/utils"
)

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	provider *market.Provider
	log      zerolog.Logger
	version  string
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, provider *market.Provider, log zerolog.Logger, version string) *Server {
	s := &Server{
		cfg:      cfg,
		provider: provider,
		log:      log.With().Str("component", "api").Logger(),
		version:  version,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown on
// SIGINT/SIGTERM.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case err := <-errCh:
		return err
	case <-done:
	}

	s.log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	origins := []string{"*"}
	if s.cfg != nil && len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/commodities", s.handleCommodities)
		r.Get("/snapshot/{commodity}", s.handleSnapshot)
		r.Post("/analyze", s.handleAnalyze)

		r.Get("/config", s.handleGetConfig)
		r.Delete("/cache", s.handleFlushCache)
		r.Delete("/cache/{commodity}", s.handleInvalidateCache)
	})

	return r
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// ============================================================
// Request / response types
// ============================================================

// APIResponse is the envelope of every API response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"` // error kind for failed market fetches
}

// CommodityInfo describes one supported commodity.
type CommodityInfo struct {
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Unit        string   `json:"unit"`
	TonneFactor float64  `json:"tonne_factor"`
	InSubunit   bool     `json:"in_subunit"`
	Countries   []string `json:"countries"`
}

// AnalyzeRequest is the body for POST /api/v1/analyze.
type AnalyzeRequest struct {
	Commodity string  `json:"commodity"`
	CostBasis float64 `json:"cost_basis"`
	WeightKg  float64 `json:"weight_kg"`
	Refresh   bool    `json:"refresh,omitempty"` // drop the cached snapshot first
}

// AnalyzeResponse is the data of a successful analysis.
type AnalyzeResponse struct {
	Commodity     string      `json:"commodity"`
	LastUpdated   string      `json:"last_updated"`
	PricePerTonne float64     `json:"price_per_tonne"`
	ExchangeRate  float64     `json:"exchange_rate"`
	CostBasis     float64     `json:"cost_basis"`
	WeightKg      float64     `json:"weight_kg"`
	Rows          []trade.Row `json:"rows"`
	Best          *trade.Row  `json:"best,omitempty"`
	Worst         *trade.Row  `json:"worst,omitempty"`
	Notice        string      `json:"notice,omitempty"`
}

// NoRowsNotice is returned when a snapshot carries no country rows.
const NoRowsNotice = "Could not perform analysis: no market data rows are available."

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "ok",
			"version":   s.version,
			"cache_ttl": s.provider.TTL().String(),
			"cached":    s.provider.Cached(),
			"time_ist":  utils.FormatDateTimeIST(utils.NowIST()),
		},
	})
}

func (s *Server) handleCommodities(w http.ResponseWriter, r *http.Request) {
	all := s.provider.Catalog().All()
	out := make([]CommodityInfo, 0, len(all))
	for _, c := range all {
		countries := make([]string, 0, len(c.Countries))
		for _, row := range c.Countries {
			countries = append(countries, row.Country)
		}
		out = append(out, CommodityInfo{
			Name:        c.Name,
			Symbol:      c.Symbol,
			Unit:        c.Unit,
			TonneFactor: c.TonneFactor,
			InSubunit:   c.InSubunit,
			Countries:   countries,
		})
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: out})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	name := s.resolve(chi.URLParam(r, "commodity"))

	refresh := false
	if raw := r.URL.Query().Get("refresh"); raw != "" {
		var err error
		if refresh, err = strconv.ParseBool(raw); err != nil {
			s.writeError(w, http.StatusBadRequest, "refresh must be a boolean")
			return
		}
	}
	if refresh {
		s.provider.Invalidate(name)
	}

	snap, err := s.provider.FetchSnapshot(r.Context(), name)
	if err != nil {
		s.writeFetchError(w, name, err)
		return
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: snap})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Commodity == "" {
		s.writeError(w, http.StatusBadRequest, "commodity is required")
		return
	}

	tr := trade.Request{CostBasis: req.CostBasis, WeightKg: req.WeightKg}
	if err := tr.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := s.resolve(req.Commodity)
	if req.Refresh {
		s.provider.Invalidate(name)
	}
	snap, err := s.provider.FetchSnapshot(r.Context(), name)
	if err != nil {
		s.writeFetchError(w, name, err)
		return
	}

	res, err := trade.Run(tr, snap.Rows)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := AnalyzeResponse{
		Commodity:     snap.Commodity,
		LastUpdated:   snap.LastUpdated,
		PricePerTonne: snap.PricePerTonne,
		ExchangeRate:  snap.ExchangeRate,
		CostBasis:     req.CostBasis,
		WeightKg:      req.WeightKg,
		Rows:          res.Rows,
		Best:          res.Best,
		Worst:         res.Worst,
	}
	if len(res.Rows) == 0 {
		resp.Notice = NoRowsNotice
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

// ============================================================
// Helpers
// ============================================================

// resolve maps user input to a catalog name, leaving unknown names as-is
// so the provider reports them.
func (s *Server) resolve(name string) string {
	if canonical, ok := s.provider.Catalog().Resolve(name); ok {
		return canonical
	}
	return name
}

func (s *Server) writeFetchError(w http.ResponseWriter, commodity string, err error) {
	status := http.StatusInternalServerError
	switch market.KindOf(err) {
	case market.KindUnknownCommodity:
		status = http.StatusNotFound
	case market.KindUpstreamFetch:
		status = http.StatusBadGateway
	}
	s.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   market.FailureMessage(commodity, err),
		Kind:    market.KindOf(err).String(),
		Data:    map[string]string{"last_updated": market.FallbackFetchedAt},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("failed to write JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
