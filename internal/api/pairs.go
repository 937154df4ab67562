package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/project-mangla/apsaiassistant/internal/knowledge"
	"github.com/project-mangla/apsaiassistant/internal/log"
	"github.com/project-mangla/apsaiassistant/internal/session"
)

// pairsHandler exposes knowledge base CRUD to authenticated admins.
type pairsHandler struct {
	store    *knowledge.Store
	sessions *session.Manager
	logger   log.Logger
}

// pairRequest is the JSON body for create and update operations.
type pairRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// requireAdmin verifies the admin cookie. Writes a 401 and returns false
// when the caller is not authenticated.
func (h *pairsHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, err := h.sessions.Admin(r); err != nil {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "admin login required", h.logger)
		return false
	}
	return true
}

// pairID parses the {id} path value.
func (h *pairsHandler) pairID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_id", "pair ID must be an integer", h.logger)
		return 0, false
	}
	return id, true
}

// decodePair reads and trims the request body.
func (h *pairsHandler) decodePair(w http.ResponseWriter, r *http.Request) (pairRequest, bool) {
	var req pairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_body", "invalid request body", h.logger)
		return pairRequest{}, false
	}
	req.Question = strings.TrimSpace(req.Question)
	req.Answer = strings.TrimSpace(req.Answer)
	return req, true
}

// list handles GET /api/v1/pairs.
func (h *pairsHandler) list(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	pairs := h.store.All()
	WriteJSON(w, http.StatusOK, map[string]any{
		"items": pairs,
		"total": len(pairs),
	}, h.logger)
}

// create handles POST /api/v1/pairs.
func (h *pairsHandler) create(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	req, ok := h.decodePair(w, r)
	if !ok {
		return
	}

	pair, err := h.store.Add(req.Question, req.Answer)
	if err != nil {
		if errors.Is(err, knowledge.ErrEmptyField) {
			WriteError(w, http.StatusBadRequest, "empty_field", "both question and answer are required", h.logger)
			return
		}
		h.logger.Error("adding pair", "error", err)
		WriteError(w, http.StatusInternalServerError, "add_failed", "failed to add pair", h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, pair, h.logger)
}

// update handles PUT /api/v1/pairs/{id}.
func (h *pairsHandler) update(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, ok := h.pairID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodePair(w, r)
	if !ok {
		return
	}

	if err := h.store.Update(id, req.Question, req.Answer); err != nil {
		switch {
		case errors.Is(err, knowledge.ErrNotFound):
			WriteError(w, http.StatusNotFound, "not_found", "pair not found", h.logger)
		case errors.Is(err, knowledge.ErrEmptyField):
			WriteError(w, http.StatusBadRequest, "empty_field", "both question and answer are required", h.logger)
		default:
			h.logger.Error("updating pair", "error", err, "id", id)
			WriteError(w, http.StatusInternalServerError, "update_failed", "failed to update pair", h.logger)
		}
		return
	}

	pair, err := h.store.Get(id)
	if err != nil {
		h.logger.Error("reading updated pair", "error", err, "id", id)
		WriteError(w, http.StatusInternalServerError, "update_failed", "failed to read updated pair", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, pair, h.logger)
}

// remove handles DELETE /api/v1/pairs/{id}.
func (h *pairsHandler) remove(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, ok := h.pairID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, knowledge.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "not_found", "pair not found", h.logger)
			return
		}
		h.logger.Error("deleting pair", "error", err, "id", id)
		WriteError(w, http.StatusInternalServerError, "delete_failed", "failed to delete pair", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"}, h.logger)
}
