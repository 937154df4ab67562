package web

import (
	"net/http"
	"strconv"
	"strings"
)

// chatbotPage renders the visitor-facing chat page.
func (h *Handler) chatbotPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "chatbot.html", h.pageData(w, r))
}

// notFound renders the chatbot page with a 404 status.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, "chatbot.html", h.pageData(w, r))
}

// loginPage renders the admin login form.
func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login.html", h.pageData(w, r))
}

// login verifies submitted credentials and establishes the admin cookie.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.sessions.SetFlash(w, "danger", "Invalid credentials. Please try again.")
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if username == "" || password == "" || !h.credentials.Verify(username, password) {
		h.logger.Warn("admin login failed", "username", username)
		h.sessions.SetFlash(w, "danger", "Invalid credentials. Please try again.")
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	h.logger.Info("admin logged in", "username", username)
	h.sessions.SetAdmin(w, username)
	h.sessions.SetFlash(w, "success", "Successfully logged in!")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// logout clears the admin cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearAdmin(w)
	h.sessions.SetFlash(w, "info", "Successfully logged out!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// adminPage renders the Q&A management panel.
func (h *Handler) adminPage(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	data := h.pageData(w, r)
	data.Username = username
	data.Pairs = h.store.All()
	h.render(w, http.StatusOK, "admin.html", data)
}

// addPair handles the add form on the admin panel.
func (h *Handler) addPair(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	question, answer, ok := h.pairForm(w, r)
	if !ok {
		return
	}

	if _, err := h.store.Add(question, answer); err != nil {
		h.logger.Error("adding pair", "error", err)
		h.sessions.SetFlash(w, "danger", "Failed to add Q&A pair.")
	} else {
		h.sessions.SetFlash(w, "success", "Q&A pair added successfully!")
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// editPair handles the edit form on the admin panel.
func (h *Handler) editPair(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.sessions.SetFlash(w, "danger", "Failed to update Q&A pair.")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	question, answer, ok := h.pairForm(w, r)
	if !ok {
		return
	}

	if err := h.store.Update(id, question, answer); err != nil {
		h.logger.Error("updating pair", "error", err, "id", id)
		h.sessions.SetFlash(w, "danger", "Failed to update Q&A pair.")
	} else {
		h.sessions.SetFlash(w, "success", "Q&A pair updated successfully!")
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// deletePair removes a pair from the admin panel.
func (h *Handler) deletePair(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err == nil {
		err = h.store.Delete(id)
	}
	if err != nil {
		h.logger.Error("deleting pair", "error", err)
		h.sessions.SetFlash(w, "danger", "Failed to delete Q&A pair.")
	} else {
		h.sessions.SetFlash(w, "success", "Q&A pair deleted successfully!")
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// requireAdmin redirects unauthenticated callers to the login page.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, err := h.sessions.Admin(r)
	if err != nil {
		h.sessions.SetFlash(w, "warning", "Please log in to access the admin panel.")
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return "", false
	}
	return username, true
}

// pairForm extracts and validates the question/answer fields. When a field
// is missing it flashes a warning and redirects back to the panel.
func (h *Handler) pairForm(w http.ResponseWriter, r *http.Request) (question, answer string, ok bool) {
	if err := r.ParseForm(); err != nil {
		h.sessions.SetFlash(w, "danger", "Failed to read the submitted form.")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return "", "", false
	}

	question = strings.TrimSpace(r.PostFormValue("question"))
	answer = strings.TrimSpace(r.PostFormValue("answer"))
	if question == "" || answer == "" {
		h.sessions.SetFlash(w, "warning", "Both question and answer are required.")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return "", "", false
	}
	return question, answer, true
}

// pageData assembles the shared template payload, consuming any pending
// flash message.
func (h *Handler) pageData(w http.ResponseWriter, r *http.Request) pageData {
	var data pageData
	if flash, ok := h.sessions.Flash(w, r); ok {
		data.Flash = &flash
	}
	return data
}
