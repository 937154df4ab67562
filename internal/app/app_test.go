package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/project-mangla/apsaiassistant/internal/config"
	"github.com/project-mangla/apsaiassistant/internal/log"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Addr:             "0.0.0.0:5000",
		DataDir:          t.TempDir(),
		ModelName:        config.DefaultModelName,
		Temperature:      0.7,
		MaxOutputTokens:  300,
		MinConfidence:    0.1,
		MediumConfidence: 0.2,
		HighConfidence:   0.4,
		MemoryWindow:     config.DefaultMemoryWindow,
		SessionSecret:    config.DevSessionSecret,
	}
}

func TestSetup(t *testing.T) {
	a, err := Setup(context.Background(), testConfig(t), log.NewNop())
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	defer a.Close()

	if a.Store == nil || a.Credentials == nil || a.Responder == nil {
		t.Fatal("Setup() left core components nil")
	}
	if a.Enhancer != nil {
		t.Error("enhancer should be nil without an API key")
	}
	if a.Handler() == nil {
		t.Fatal("Handler() returned nil")
	}
}

func TestSetupSeedsKnowledgeBase(t *testing.T) {
	a, err := Setup(context.Background(), testConfig(t), log.NewNop())
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	defer a.Close()

	if got := len(a.Store.All()); got != 2 {
		t.Errorf("seeded store has %d pairs, want 2", got)
	}
}

func TestSetupServesEndToEnd(t *testing.T) {
	a, err := Setup(context.Background(), testConfig(t), log.NewNop())
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	defer a.Close()

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health through app handler = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET / through app handler = %d, want 200", rec.Code)
	}
}
