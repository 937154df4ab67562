// Package api provides the HTTP server for the APS Mangla assistant.
//
// # Architecture
//
// A single server hosts both the JSON API and the server-rendered pages,
// behind a layered middleware stack:
//
//	Recovery → RequestID → Logging → CORS → RateLimit → Routes
//
// Health probes (/health, /ready) bypass the middleware stack via a
// top-level mux, ensuring they remain fast and unauthenticated.
//
// # Endpoints
//
// Health probes (no middleware):
//   - GET /health — returns {"status":"ok"}
//   - GET /ready  — checks the knowledge base file is reachable
//
// Chat:
//   - POST /api/v1/chat — answer a visitor message; accepts a form field
//     or JSON body named "message", returns {"response","confidence"}
//
// Knowledge base CRUD (admin cookie required):
//   - GET    /api/v1/pairs      — list Q&A pairs
//   - POST   /api/v1/pairs      — add a pair
//   - PUT    /api/v1/pairs/{id} — update a pair
//   - DELETE /api/v1/pairs/{id} — delete a pair
//
// Everything else falls through to the page handler (chatbot UI and the
// admin panel), which lives in the web package.
//
// # Sessions
//
// Visitor identity rides in an HMAC-signed sid cookie; conversation memory
// is held in-process keyed by that ID and capped at a few exchanges.
// Admin identity is a separate signed cookie set by the login page.
//
// # Error Handling
//
// API errors use the envelope {"error": {"code": "...", "message": "..."}},
// except the chat endpoint, which keeps its original flat shape so the
// chat page's client script stays compatible.
//
// # Security
//
// The middleware stack enforces:
//   - Per-IP rate limiting (token bucket, 60 req/min burst)
//   - CORS with explicit origin allowlist
//   - Security headers (X-Frame-Options, nosniff, Referrer-Policy)
//   - HttpOnly, Secure, SameSite=Lax cookies
package api
