package web

import (
	"errors"
	"net/http"

	"github.com/project-mangla/apsaiassistant/internal/knowledge"
	"github.com/project-mangla/apsaiassistant/internal/log"
	"github.com/project-mangla/apsaiassistant/internal/session"
	"github.com/project-mangla/apsaiassistant/internal/web/static"
)

// HandlerConfig contains configuration for creating the page handler.
type HandlerConfig struct {
	Logger      log.Logger
	Store       *knowledge.Store       // Required
	Credentials *knowledge.Credentials // Required
	Sessions    *session.Manager       // Required
}

// Handler renders the chatbot page and the admin panel.
type Handler struct {
	mux         *http.ServeMux
	store       *knowledge.Store
	credentials *knowledge.Credentials
	sessions    *session.Manager
	logger      log.Logger
}

// NewHandler creates a page handler with all routes configured.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("knowledge store is required")
	}
	if cfg.Credentials == nil {
		return nil, errors.New("credentials store is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session manager is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	h := &Handler{
		mux:         http.NewServeMux(),
		store:       cfg.Store,
		credentials: cfg.Credentials,
		sessions:    cfg.Sessions,
		logger:      logger,
	}

	h.mux.HandleFunc("GET /{$}", h.chatbotPage)
	h.mux.Handle("GET /static/", http.StripPrefix("/static/", static.Handler()))

	h.mux.HandleFunc("GET /admin/login", h.loginPage)
	h.mux.HandleFunc("POST /admin/login", h.login)
	h.mux.HandleFunc("GET /admin/logout", h.logout)
	h.mux.HandleFunc("GET /admin", h.adminPage)
	h.mux.HandleFunc("POST /admin/add", h.addPair)
	h.mux.HandleFunc("POST /admin/edit/{id}", h.editPair)
	h.mux.HandleFunc("GET /admin/delete/{id}", h.deletePair)

	// Unknown paths land back on the chatbot page.
	h.mux.HandleFunc("/", h.notFound)

	return h, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}
