package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

const testSecret = "test-secret-key-for-cookie-signing"

func newTestManager() *Manager {
	return &Manager{secret: []byte(testSecret), isDev: true}
}

// carryCookies copies Set-Cookie headers from a response onto a new request.
func carryCookies(t *testing.T, rec *httptest.ResponseRecorder, r *http.Request) {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
}

func TestSessionIDIssuesNewID(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	id := m.SessionID(rec, r)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("SessionID() returned non-UUID %q: %v", id, err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookieName {
		t.Fatalf("expected one %q cookie, got %v", sessionCookieName, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}
}

func TestSessionIDRoundTrip(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	first := m.SessionID(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	carryCookies(t, rec, r)

	second := m.SessionID(httptest.NewRecorder(), r)
	if second != first {
		t.Errorf("SessionID() = %q on second request, want %q", second, first)
	}
}

func TestSessionIDRejectsTamperedCookie(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	first := m.SessionID(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	forged := uuid.New().String()
	for _, c := range rec.Result().Cookies() {
		c.Value = forged + c.Value[strings.LastIndex(c.Value, "."):]
		r.AddCookie(c)
	}

	second := m.SessionID(httptest.NewRecorder(), r)
	if second == forged {
		t.Error("tampered session cookie was accepted")
	}
	if second == first {
		t.Error("tampered session cookie should produce a fresh ID")
	}
}

func TestAdminRoundTrip(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	m.SetAdmin(rec, "admin")

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	carryCookies(t, rec, r)

	username, err := m.Admin(r)
	if err != nil {
		t.Fatalf("Admin() error: %v", err)
	}
	if username != "admin" {
		t.Errorf("Admin() = %q, want %q", username, "admin")
	}
}

func TestAdminMissingCookie(t *testing.T) {
	m := newTestManager()

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if _, err := m.Admin(r); !errors.Is(err, ErrCookieNotFound) {
		t.Errorf("Admin() error = %v, want ErrCookieNotFound", err)
	}
}

func TestAdminRejectsForgedCookie(t *testing.T) {
	m := newTestManager()

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(&http.Cookie{Name: adminCookieName, Value: "admin.Zm9yZ2Vk"})

	if _, err := m.Admin(r); !errors.Is(err, ErrCookieInvalid) {
		t.Errorf("Admin() error = %v, want ErrCookieInvalid", err)
	}
}

func TestAdminRejectsOtherSecret(t *testing.T) {
	other := &Manager{secret: []byte("a-completely-different-secret"), isDev: true}

	rec := httptest.NewRecorder()
	other.SetAdmin(rec, "admin")

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	carryCookies(t, rec, r)

	m := newTestManager()
	if _, err := m.Admin(r); !errors.Is(err, ErrCookieInvalid) {
		t.Errorf("Admin() error = %v, want ErrCookieInvalid", err)
	}
}

func TestClearAdmin(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	m.ClearAdmin(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("ClearAdmin cookie MaxAge = %d, want negative", cookies[0].MaxAge)
	}
}

func TestFlashRoundTrip(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	m.SetFlash(rec, "success", "Q&A pair added successfully!")

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	carryCookies(t, rec, r)

	rec2 := httptest.NewRecorder()
	flash, ok := m.Flash(rec2, r)
	if !ok {
		t.Fatal("Flash() found no message")
	}
	if flash.Level != "success" {
		t.Errorf("flash level = %q, want %q", flash.Level, "success")
	}
	if flash.Message != "Q&A pair added successfully!" {
		t.Errorf("flash message = %q", flash.Message)
	}

	// Reading the flash must clear it.
	cleared := false
	for _, c := range rec2.Result().Cookies() {
		if c.Name == flashCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("flash cookie was not cleared after read")
	}
}

func TestFlashMessageWithColons(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	m.SetFlash(rec, "error", "Invalid credentials: try again")

	r := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	carryCookies(t, rec, r)

	flash, ok := m.Flash(httptest.NewRecorder(), r)
	if !ok {
		t.Fatal("Flash() found no message")
	}
	if flash.Message != "Invalid credentials: try again" {
		t.Errorf("flash message = %q", flash.Message)
	}
}

func TestFlashAbsent(t *testing.T) {
	m := newTestManager()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := m.Flash(httptest.NewRecorder(), r); ok {
		t.Error("Flash() reported a message with no cookie present")
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	secret := []byte(testSecret)

	signed := sign("hello-world", secret)
	got, ok := verifySigned(signed, secret)
	if !ok {
		t.Fatal("verifySigned rejected a freshly signed value")
	}
	if got != "hello-world" {
		t.Errorf("verifySigned = %q, want %q", got, "hello-world")
	}
}

func TestVerifySignedMalformed(t *testing.T) {
	secret := []byte(testSecret)

	for _, value := range []string{"", "no-dot", ".sig-only", "value.!!!not-base64!!!"} {
		if _, ok := verifySigned(value, secret); ok {
			t.Errorf("verifySigned(%q) accepted malformed value", value)
		}
	}
}
