package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for cookie operations.
var (
	// ErrCookieNotFound is returned when the cookie is absent from the request.
	ErrCookieNotFound = errors.New("cookie not found")
	// ErrCookieInvalid is returned when the cookie signature or format is invalid.
	ErrCookieInvalid = errors.New("cookie invalid")
)

// Cookie configuration.
const (
	sessionCookieName = "sid"
	adminCookieName   = "admin"
	flashCookieName   = "flash"
	cookieMaxAge      = 24 * 3600 // 1 day in seconds
)

// Flash is a one-shot notice carried across a redirect.
type Flash struct {
	Level   string // "success", "error", "info"
	Message string
}

// Manager issues and verifies HMAC-signed cookies for visitor sessions,
// admin identity, and flash messages. Values are tamper-evident:
// "value.base64url(HMAC-SHA256(secret, value))".
type Manager struct {
	secret []byte
	isDev  bool
}

// NewManager creates a cookie manager. isDev disables the Secure flag so
// cookies work over plain HTTP during development.
func NewManager(secret string, isDev bool) *Manager {
	return &Manager{secret: []byte(secret), isDev: isDev}
}

// SessionID extracts the visitor session ID from the sid cookie,
// creating and setting a new one when absent or invalid.
func (m *Manager) SessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if id, ok := verifySigned(cookie.Value, m.secret); ok {
			if _, err := uuid.Parse(id); err == nil {
				return id
			}
		}
	}

	id := uuid.New().String()
	m.set(w, sessionCookieName, sign(id, m.secret), cookieMaxAge)
	return id
}

// Admin extracts the authenticated admin username from the admin cookie.
// Returns ErrCookieNotFound when absent, ErrCookieInvalid when tampered.
func (m *Manager) Admin(r *http.Request) (string, error) {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil {
		return "", ErrCookieNotFound
	}
	username, ok := verifySigned(cookie.Value, m.secret)
	if !ok || username == "" {
		return "", ErrCookieInvalid
	}
	return username, nil
}

// SetAdmin marks the caller as an authenticated admin.
func (m *Manager) SetAdmin(w http.ResponseWriter, username string) {
	m.set(w, adminCookieName, sign(username, m.secret), cookieMaxAge)
}

// ClearAdmin removes the admin cookie.
func (m *Manager) ClearAdmin(w http.ResponseWriter) {
	m.set(w, adminCookieName, "", -1)
}

// SetFlash stores a one-shot notice shown on the next page render.
func (m *Manager) SetFlash(w http.ResponseWriter, level, message string) {
	value := level + ":" + message
	encoded := base64.URLEncoding.EncodeToString([]byte(value))
	m.set(w, flashCookieName, sign(encoded, m.secret), cookieMaxAge)
}

// Flash returns the pending notice, if any, and clears it.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return Flash{}, false
	}
	m.set(w, flashCookieName, "", -1)

	encoded, ok := verifySigned(cookie.Value, m.secret)
	if !ok {
		return Flash{}, false
	}
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return Flash{}, false
	}

	level, message, found := strings.Cut(string(raw), ":")
	if !found {
		return Flash{}, false
	}
	return Flash{Level: level, Message: message}, true
}

func (m *Manager) set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Secure:   !m.isDev,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// sign creates an HMAC-signed cookie value: "value.base64url(HMAC-SHA256(secret, value))".
func sign(value string, secret []byte) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(value))
	sig := base64.URLEncoding.EncodeToString(h.Sum(nil))
	return value + "." + sig
}

// verifySigned splits a signed cookie value and verifies the HMAC signature.
// Returns the extracted value and true on success, or empty string and false
// on any failure.
func verifySigned(value string, secret []byte) (string, bool) {
	idx := strings.LastIndex(value, ".")
	if idx < 1 {
		return "", false
	}

	v := value[:idx]
	sig, err := base64.URLEncoding.DecodeString(value[idx+1:])
	if err != nil {
		return "", false
	}

	h := hmac.New(sha256.New, secret)
	h.Write([]byte(v))
	expected := h.Sum(nil)

	if subtle.ConstantTimeCompare(sig, expected) != 1 {
		return "", false
	}

	return v, true
}
