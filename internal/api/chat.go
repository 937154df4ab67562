package api

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/project-mangla/apsaiassistant/internal/ai"
	"github.com/project-mangla/apsaiassistant/internal/log"
	"github.com/project-mangla/apsaiassistant/internal/session"
)

// maxChatBodyBytes caps chat request bodies.
const maxChatBodyBytes = 64 * 1024

// chatHandler answers visitor messages and maintains conversation memory.
type chatHandler struct {
	responder *ai.Responder
	memory    *session.Memory
	sessions  *session.Manager
	logger    log.Logger
}

// chatRequest is the JSON body variant of a chat message. The chat page
// posts a form instead; both carry a single "message" field.
type chatRequest struct {
	Message string `json:"message"`
}

// chatErrorBody is the flat 500 payload the chat page expects: its script
// reads "error" as a string, so no structured envelope here.
var chatErrorBody = map[string]string{
	"error":      "Sorry, I encountered an error while processing your message.",
	"response":   "I apologize, but something went wrong. Please try asking your question again.",
	"confidence": "0.00",
}

// send handles POST /api/v1/chat.
func (h *chatHandler) send(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("chat request failed", "panic", rec, "path", r.URL.Path)
			WriteJSON(w, http.StatusInternalServerError, chatErrorBody, h.logger)
		}
	}()

	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)

	message, ok := h.message(w, r)
	if !ok {
		return
	}
	if message == "" {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Empty message"}, h.logger)
		return
	}

	sid := h.sessions.SessionID(w, r)
	history := h.memory.History(sid)

	h.logger.Debug("chat message received", "session", sid, "length", len(message))

	reply := h.responder.Respond(r.Context(), message, history)

	h.memory.Append(sid, message, reply.Response, reply.Confidence)

	WriteJSON(w, http.StatusOK, reply, h.logger)
}

// message extracts the visitor's message from a form or JSON body.
// On a malformed body it writes the error response and returns ok=false.
func (h *chatHandler) message(w http.ResponseWriter, r *http.Request) (string, bool) {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if contentType == "application/json" {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"}, h.logger)
			return "", false
		}
		return strings.TrimSpace(req.Message), true
	}

	if err := r.ParseForm(); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"}, h.logger)
		return "", false
	}
	return strings.TrimSpace(r.PostFormValue("message")), true
}
