// Package static provides embedded static assets for the web pages.
package static

import (
	"embed"
	"net/http"
)

//go:embed css/*.css
var assetsFS embed.FS

// Handler returns an http.Handler that serves the embedded assets.
func Handler() http.Handler {
	return http.FileServer(http.FS(assetsFS))
}
