package api

import (
	"errors"
	"net/http"

	"github.com/project-mangla/apsaiassistant/internal/ai"
	"github.com/project-mangla/apsaiassistant/internal/knowledge"
	"github.com/project-mangla/apsaiassistant/internal/log"
	"github.com/project-mangla/apsaiassistant/internal/session"
)

// ServerConfig contains configuration for creating the HTTP server.
type ServerConfig struct {
	Logger      log.Logger
	Store       *knowledge.Store // Required
	Responder   *ai.Responder    // Required
	Memory      *session.Memory  // Required
	Sessions    *session.Manager // Required
	Pages       http.Handler     // Optional: server-rendered pages mounted at /
	CORSOrigins []string         // Allowed origins for CORS
	IsDev       bool             // Enables HTTP cookies (no Secure flag)
	TrustProxy  bool             // Trust X-Real-IP/X-Forwarded-For headers
	RateBurst   int              // Rate limiter burst size per IP (0 = default 60)
}

// Server is the HTTP server for the assistant.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates a server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("knowledge store is required")
	}
	if cfg.Responder == nil {
		return nil, errors.New("responder is required")
	}
	if cfg.Memory == nil {
		return nil, errors.New("conversation memory is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session manager is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	ch := &chatHandler{
		responder: cfg.Responder,
		memory:    cfg.Memory,
		sessions:  cfg.Sessions,
		logger:    logger,
	}

	ph := &pairsHandler{
		store:    cfg.Store,
		sessions: cfg.Sessions,
		logger:   logger,
	}

	mux := http.NewServeMux()

	// Chat
	mux.HandleFunc("POST /api/v1/chat", ch.send)

	// Knowledge base CRUD
	mux.HandleFunc("GET /api/v1/pairs", ph.list)
	mux.HandleFunc("POST /api/v1/pairs", ph.create)
	mux.HandleFunc("PUT /api/v1/pairs/{id}", ph.update)
	mux.HandleFunc("DELETE /api/v1/pairs/{id}", ph.remove)

	// Server-rendered pages take everything the API does not claim.
	if cfg.Pages != nil {
		mux.Handle("/", cfg.Pages)
	}

	// Rate limiter: per-IP token bucket (1 token/sec refill)
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	rl := newRateLimiter(1.0, burst)

	// Build middleware stack (outermost first):
	//   Recovery → RequestID → Logging → CORS → RateLimit → Routes
	// RequestID must be before Logging so request_id is available in log attributes.
	// CORS must be before RateLimit so preflight OPTIONS gets proper CORS headers.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Wrap with security headers
	isDev := cfg.IsDev
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w, isDev)
		handler.ServeHTTP(w, r)
	})

	// Use a top-level mux to separate health probes from the middleware stack
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health(logger))
	topMux.HandleFunc("GET /ready", readiness(cfg.Store, logger))
	topMux.Handle("/", final)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
