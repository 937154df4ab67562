package testutil

import (
	"testing"

	"github.com/project-mangla/apsaiassistant/internal/knowledge"
	"github.com/project-mangla/apsaiassistant/internal/log"
)

// OpenStore creates a knowledge store in a temp directory, seeded with the
// default Q&A pairs, using the production confidence floor.
func OpenStore(t *testing.T) *knowledge.Store {
	t.Helper()

	store, err := knowledge.Open(t.TempDir(), 0.1, log.NewNop())
	if err != nil {
		t.Fatalf("opening knowledge store: %v", err)
	}
	return store
}

// OpenStoreWithPairs creates a store and replaces the seed data with the
// given pairs.
func OpenStoreWithPairs(t *testing.T, pairs []knowledge.Pair) *knowledge.Store {
	t.Helper()

	store := OpenStore(t)
	for _, p := range store.All() {
		if err := store.Delete(p.ID); err != nil {
			t.Fatalf("clearing seed pair %d: %v", p.ID, err)
		}
	}
	for _, p := range pairs {
		if _, err := store.Add(p.Question, p.Answer); err != nil {
			t.Fatalf("seeding pair %q: %v", p.Question, err)
		}
	}
	return store
}
