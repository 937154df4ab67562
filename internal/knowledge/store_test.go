package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/project-mangla/apsaiassistant/internal/log"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), 0.1, log.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func TestOpen_SeedsDefaults(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, 0.1, log.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	pairs := s.All()
	if len(pairs) != 2 {
		t.Fatalf("seeded pairs = %d, want 2", len(pairs))
	}
	if pairs[0].ID != 1 || pairs[1].ID != 2 {
		t.Errorf("seeded IDs = %d, %d, want 1, 2", pairs[0].ID, pairs[1].ID)
	}

	if _, err := os.Stat(filepath.Join(dir, qaFileName)); err != nil {
		t.Errorf("data file not created: %v", err)
	}
}

func TestOpen_ExistingFileNotReseeded(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, 0.1, log.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s.Add("What are the school timings?", "School runs from 8am to 2pm"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Reopen the same directory: the added pair must survive.
	s2, err := Open(dir, 0.1, log.NewNop())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if got := len(s2.All()); got != 3 {
		t.Errorf("pairs after reopen = %d, want 3", got)
	}
}

func TestStore_Add(t *testing.T) {
	s := newTestStore(t)

	pair, err := s.Add("Where is the library?", "The library is on the first floor")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if pair.ID != 3 {
		t.Errorf("Add() ID = %d, want 3 (max existing + 1)", pair.ID)
	}

	// New content must be searchable immediately.
	m := s.Search("where is the library")
	if m.Kind != MatchQuestion {
		t.Fatalf("Search() kind = %q, want %q", m.Kind, MatchQuestion)
	}
	if m.Pair.ID != pair.ID {
		t.Errorf("Search() matched ID %d, want %d", m.Pair.ID, pair.ID)
	}
}

func TestStore_Add_IDAfterDelete(t *testing.T) {
	s := newTestStore(t)

	if err := s.Delete(2); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	pair, err := s.Add("q", "a")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	// IDs come from max+1, so deleting the tail reuses its ID.
	if pair.ID != 2 {
		t.Errorf("Add() ID = %d, want 2", pair.ID)
	}
}

func TestStore_Add_EmptyField(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add("", "answer"); !errors.Is(err, ErrEmptyField) {
		t.Errorf("Add(empty question) error = %v, want ErrEmptyField", err)
	}
	if _, err := s.Add("question", ""); !errors.Is(err, ErrEmptyField) {
		t.Errorf("Add(empty answer) error = %v, want ErrEmptyField", err)
	}
}

func TestStore_Update(t *testing.T) {
	s := newTestStore(t)

	if err := s.Update(1, "Who runs APS Mangla?", "The principal runs APS Mangla"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Question != "Who runs APS Mangla?" {
		t.Errorf("Get() question = %q, not updated", got.Question)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.Update(99, "q", "a")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(99) error = %v, want ErrNotFound", err)
	}
	// The file must be untouched.
	if got := len(s.All()); got != 2 {
		t.Errorf("pairs after failed update = %d, want 2", got)
	}
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)

	if err := s.Delete(1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(1) after delete error = %v, want ErrNotFound", err)
	}

	if err := s.Delete(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete(1) error = %v, want ErrNotFound", err)
	}
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, qaFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A corrupt file must not take the service down.
	s, err := Open(dir, 0.1, log.NewNop())
	if err != nil {
		t.Fatalf("Open() with corrupt file error = %v", err)
	}
	if got := len(s.All()); got != 0 {
		t.Errorf("pairs from corrupt file = %d, want 0", got)
	}
	if m := s.Search("anything"); m.Kind != MatchNone {
		t.Errorf("Search() on empty store kind = %q, want %q", m.Kind, MatchNone)
	}
}

func TestStore_Ping(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	if err := os.Remove(s.path); err != nil {
		t.Fatal(err)
	}
	if err := s.Ping(); err == nil {
		t.Error("Ping() after file removal = nil, want error")
	}
}

func TestStore_AllReturnsCopy(t *testing.T) {
	s := newTestStore(t)

	pairs := s.All()
	pairs[0].Question = "mutated"

	fresh, err := s.Get(pairs[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Question == "mutated" {
		t.Error("All() exposes internal state")
	}
}
