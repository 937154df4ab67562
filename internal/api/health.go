package api

import (
	"net/http"

	"github.com/project-mangla/apsaiassistant/internal/knowledge"
	"github.com/project-mangla/apsaiassistant/internal/log"
)

// health is a simple liveness probe. Returns 200 OK with {"status":"ok"}.
func health(logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}

// readiness reports whether the knowledge base file is reachable.
func readiness(store *knowledge.Store, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if err := store.Ping(); err != nil {
			logger.Error("readiness check failed", "error", err)
			WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, logger)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}
