package stub

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/five82/apolice/internal/metrics"
	"github.com/five82/apolice/internal/policy"
	"github.com/five82/apolice/internal/query"
)

// Options configure the stub server.
type Options struct {
	// Latency is the upper bound of a random delay added to every search.
	Latency time.Duration
	// Fail makes every search return HTTP 500.
	Fail bool
	// Seed seeds the latency generator; zero uses the current time.
	Seed int64
}

// Server serves the policy search API from a fixed record set.
type Server struct {
	records policy.ResultSet
	opts    Options
	logger  *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewServer builds a Server.
func NewServer(records policy.ResultSet, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Server{
		records: records,
		opts:    opts,
		logger:  logger,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Router returns the chi router for the stub API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(s.requestLog)
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/apolices", s.handleSearch)
	r.Handle("/metrics", metrics.Handler())
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "records": len(s.records)})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if d := s.delay(); d > 0 {
		select {
		case <-time.After(d):
		case <-r.Context().Done():
			return
		}
	}
	if s.opts.Fail {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "simulated failure"})
		return
	}

	raw := make(map[string]string)
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			raw[name] = values[0]
		}
	}
	params := query.Build(raw)

	matched, err := Filter(s.records, params)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.logger.Debug("search served",
		zap.String("params", params.Summary()),
		zap.Int("results", len(matched)),
		zap.String("client_seq", r.Header.Get("X-Request-Seq")),
	)
	writeJSON(w, http.StatusOK, matched)
}

func (s *Server) delay() time.Duration {
	if s.opts.Latency <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Duration(s.rng.Int63n(int64(s.opts.Latency) + 1))
}

// requestLog emits one log line per request and echoes the request id.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = chiMiddleware.GetReqID(r.Context())
		}
		if requestID != "" {
			w.Header().Set("X-Request-ID", requestID)
		}

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("http_request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.Int("status", ww.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("response_bytes", ww.BytesWritten()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
