// Package app provides application initialization and dependency wiring.
//
// App is the container that holds every long-lived component: knowledge
// store, admin credentials, Gemini client, responder, conversation memory,
// and the HTTP server. Setup builds them in dependency order; Close
// releases what needs releasing.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/project-mangla/apsaiassistant/internal/ai"
	"github.com/project-mangla/apsaiassistant/internal/api"
	"github.com/project-mangla/apsaiassistant/internal/config"
	"github.com/project-mangla/apsaiassistant/internal/knowledge"
	"github.com/project-mangla/apsaiassistant/internal/log"
	"github.com/project-mangla/apsaiassistant/internal/session"
	"github.com/project-mangla/apsaiassistant/internal/web"
)

// App is the application container.
type App struct {
	Config *config.Config
	Logger log.Logger

	Store       *knowledge.Store
	Credentials *knowledge.Credentials
	Enhancer    ai.Enhancer
	Responder   *ai.Responder
	Memory      *session.Memory
	Sessions    *session.Manager
	Server      *api.Server
}

// Setup creates and initializes the application.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	store, err := knowledge.Open(cfg.DataDir, cfg.MinConfidence, logger)
	if err != nil {
		return nil, fmt.Errorf("opening knowledge store: %w", err)
	}
	a.Store = store

	credentials, err := knowledge.OpenCredentials(cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening admin credentials: %w", err)
	}
	a.Credentials = credentials

	a.Enhancer = provideEnhancer(ctx, cfg, logger)

	a.Responder = ai.NewResponder(store, a.Enhancer, ai.Thresholds{
		Medium: cfg.MediumConfidence,
		High:   cfg.HighConfidence,
	}, logger)

	a.Memory = session.NewMemory(cfg.MemoryWindow)
	a.Sessions = session.NewManager(cfg.SessionSecret, cfg.IsDev())

	pages, err := web.NewHandler(web.HandlerConfig{
		Logger:      logger,
		Store:       store,
		Credentials: credentials,
		Sessions:    a.Sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("creating page handler: %w", err)
	}

	server, err := api.NewServer(api.ServerConfig{
		Logger:      logger,
		Store:       store,
		Responder:   a.Responder,
		Memory:      a.Memory,
		Sessions:    a.Sessions,
		Pages:       pages,
		CORSOrigins: cfg.CORSOrigins,
		IsDev:       cfg.IsDev(),
		TrustProxy:  cfg.TrustProxy,
		RateBurst:   cfg.RateBurst,
	})
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	a.Server = server

	logger.Info("application ready",
		"pairs", len(store.All()),
		"ai_enabled", a.Enhancer != nil,
		"data_dir", cfg.DataDir,
	)

	return a, nil
}

// provideEnhancer creates the Gemini client, or nil when no API key is
// configured. The responder degrades to template answers without it.
func provideEnhancer(ctx context.Context, cfg *config.Config, logger log.Logger) ai.Enhancer {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, answers will not be AI-enhanced")
		return nil
	}

	client, err := ai.NewClient(ctx, cfg)
	if err != nil {
		logger.Warn("creating gemini client, answers will not be AI-enhanced", "error", err)
		return nil
	}

	logger.Info("gemini client ready", "model", cfg.ModelName)
	return client
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.Server.Handler()
}

// Close releases application resources. The knowledge store and memory
// are in-process, so today this only logs the shutdown.
func (a *App) Close() error {
	a.Logger.Info("shutting down application")
	return nil
}
