package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/project-mangla/apsaiassistant/internal/knowledge"
	"github.com/project-mangla/apsaiassistant/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageData is the common payload for every template.
type pageData struct {
	Flash    *session.Flash
	Username string
	Pairs    []knowledge.Pair
}

// templates holds the parsed page templates, one named template per file.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// render writes a page with the given status. The template executes into a
// buffer first so headers are only sent after a successful render; an
// execution failure turns into a plain 500 instead of a torn page.
func (h *Handler) render(w http.ResponseWriter, status int, name string, data pageData) {
	buf := new(bytes.Buffer)
	if err := templates.ExecuteTemplate(buf, name, data); err != nil {
		h.logger.Error("rendering page", "error", err, "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Debug("writing page body", "error", err)
	}
}

// mustTemplate verifies at startup that a template with the given name was
// embedded, so a missing file fails fast instead of at first request.
func mustTemplate(name string) {
	if templates.Lookup(name) == nil {
		panic(fmt.Sprintf("web: template %q not embedded", name))
	}
}

func init() {
	mustTemplate("chatbot.html")
	mustTemplate("login.html")
	mustTemplate("admin.html")
}
