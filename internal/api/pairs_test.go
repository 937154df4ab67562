package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/project-mangla/apsaiassistant/internal/knowledge"
	"github.com/project-mangla/apsaiassistant/internal/session"
)

// adminCookies logs in a fake admin and returns the resulting cookies.
func adminCookies(t *testing.T, sessions *session.Manager) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	sessions.SetAdmin(rec, "admin")
	return rec.Result().Cookies()
}

func doJSON(t *testing.T, srv *Server, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		r.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, r)
	return rec
}

func TestPairsRequireAdmin(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/pairs", ""},
		{http.MethodPost, "/api/v1/pairs", `{"question":"q","answer":"a"}`},
		{http.MethodPut, "/api/v1/pairs/1", `{"question":"q","answer":"a"}`},
		{http.MethodDelete, "/api/v1/pairs/1", ""},
	}
	for _, tt := range tests {
		rec := doJSON(t, srv, tt.method, tt.path, tt.body, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d without admin cookie, want 401", tt.method, tt.path, rec.Code)
		}
	}
}

func TestPairsList(t *testing.T) {
	srv, _, sessions := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/pairs", "", adminCookies(t, sessions))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Items []knowledge.Pair `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding list response: %v", err)
	}
	if payload.Total != 2 || len(payload.Items) != 2 {
		t.Errorf("seeded store list = %d items (total %d), want 2", len(payload.Items), payload.Total)
	}
}

func TestPairsCreate(t *testing.T) {
	srv, store, sessions := newTestServer(t, nil)
	cookies := adminCookies(t, sessions)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/pairs",
		`{"question":"What are the school timings?","answer":"School runs from 8am to 2pm."}`, cookies)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var pair knowledge.Pair
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decoding created pair: %v", err)
	}
	if pair.ID != 3 {
		t.Errorf("created pair ID = %d, want 3", pair.ID)
	}

	if _, err := store.Get(pair.ID); err != nil {
		t.Errorf("created pair not in store: %v", err)
	}
}

func TestPairsCreateEmptyField(t *testing.T) {
	srv, _, sessions := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/pairs",
		`{"question":"  ","answer":"something"}`, adminCookies(t, sessions))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPairsUpdate(t *testing.T) {
	srv, store, sessions := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodPut, "/api/v1/pairs/1",
		`{"question":"Who leads the school?","answer":"The principal is Talat Wazir."}`, adminCookies(t, sessions))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	pair, err := store.Get(1)
	if err != nil {
		t.Fatalf("reading updated pair: %v", err)
	}
	if pair.Question != "Who leads the school?" {
		t.Errorf("question = %q after update", pair.Question)
	}
}

func TestPairsUpdateNotFound(t *testing.T) {
	srv, _, sessions := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodPut, "/api/v1/pairs/99",
		`{"question":"q","answer":"a"}`, adminCookies(t, sessions))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPairsDelete(t *testing.T) {
	srv, store, sessions := newTestServer(t, nil)
	cookies := adminCookies(t, sessions)

	rec := doJSON(t, srv, http.MethodDelete, "/api/v1/pairs/2", "", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	if _, err := store.Get(2); err == nil {
		t.Error("pair 2 still present after delete")
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/pairs/2", "", cookies)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestPairsBadID(t *testing.T) {
	srv, _, sessions := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodDelete, "/api/v1/pairs/abc", "", adminCookies(t, sessions))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
