package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

var (
	// ErrNotFound is returned when a Q&A pair with the given ID does not exist.
	ErrNotFound = errors.New("qa pair not found")

	// ErrEmptyField is returned when a question or answer is blank.
	ErrEmptyField = errors.New("question and answer are required")
)

const qaFileName = "qa_data.json"

// defaultPairs seeds a fresh knowledge base so the chatbot answers
// something out of the box.
var defaultPairs = []Pair{
	{
		ID:       1,
		Question: "Who is the principal of APS Mangla?",
		Answer:   "Talat Wazir is the principal of APS Mangla",
	},
	{
		ID:       2,
		Question: "What subjects are taught in ICS?",
		Answer:   "ICS subjects include Physics, Maths, Computer, English, Urdu and Islamiyat for 1st year. For 2nd year, Pak Studies replaces Islamiyat",
	},
}

// Store manages the Q&A knowledge base file and its search index.
//
// All state lives in the JSON file plus an in-memory index rebuilt on every
// mutation. Store is safe for concurrent use: reads take a shared lock, and
// mutations serialize through an exclusive lock plus an OS-level file lock
// so that two processes pointing at the same data directory don't clobber
// each other's writes.
type Store struct {
	path          string
	flock         *flock.Flock
	minConfidence float64
	logger        *slog.Logger

	mu    sync.RWMutex
	pairs []Pair
	index *index
}

// Open loads (seeding if necessary) the knowledge base in dataDir.
// minConfidence is the similarity cutoff below which Search reports no match.
func Open(dataDir string, minConfidence float64, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, qaFileName)
	s := &Store{
		path:          path,
		flock:         flock.New(path + ".lock"),
		minConfidence: minConfidence,
		logger:        logger,
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write(defaultPairs); err != nil {
			return nil, fmt.Errorf("seeding knowledge base: %w", err)
		}
		logger.Info("seeded knowledge base", "path", path, "pairs", len(defaultPairs))
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the data file and rebuilds the search index.
// A corrupt or unreadable file leaves the store empty rather than failing
// the service; the problem is logged.
func (s *Store) Reload() error {
	pairs, err := s.read()
	if err != nil {
		s.logger.Error("loading knowledge base, continuing empty", "error", err, "path", s.path)
		pairs = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs = pairs
	s.index = buildIndex(pairs)
	s.logger.Debug("search index ready", "pairs", len(pairs))
	return nil
}

// Ping reports whether the data file is accessible. Used by the readiness probe.
func (s *Store) Ping() error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("knowledge base file: %w", err)
	}
	return nil
}

// All returns a copy of every Q&A pair, in file order.
func (s *Store) All() []Pair {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Get returns the pair with the given ID.
func (s *Store) Get(id int) (Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.pairs {
		if p.ID == id {
			return p, nil
		}
	}
	return Pair{}, ErrNotFound
}

// Add appends a new Q&A pair, assigning the next free ID, and reindexes.
func (s *Store) Add(question, answer string) (Pair, error) {
	if question == "" || answer == "" {
		return Pair{}, ErrEmptyField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextID := 0
	for _, p := range s.pairs {
		if p.ID > nextID {
			nextID = p.ID
		}
	}
	pair := Pair{ID: nextID + 1, Question: question, Answer: answer}

	pairs := append(append([]Pair(nil), s.pairs...), pair)
	if err := s.write(pairs); err != nil {
		return Pair{}, err
	}

	s.pairs = pairs
	s.index = buildIndex(pairs)
	s.logger.Info("added qa pair", "id", pair.ID)
	return pair, nil
}

// Update replaces the question and answer of an existing pair and reindexes.
func (s *Store) Update(id int, question, answer string) error {
	if question == "" || answer == "" {
		return ErrEmptyField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pairs := append([]Pair(nil), s.pairs...)
	found := false
	for i := range pairs {
		if pairs[i].ID == id {
			pairs[i].Question = question
			pairs[i].Answer = answer
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("updating pair %d: %w", id, ErrNotFound)
	}

	if err := s.write(pairs); err != nil {
		return err
	}

	s.pairs = pairs
	s.index = buildIndex(pairs)
	s.logger.Info("updated qa pair", "id", id)
	return nil
}

// Delete removes a pair by ID and reindexes.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pairs := make([]Pair, 0, len(s.pairs))
	for _, p := range s.pairs {
		if p.ID != id {
			pairs = append(pairs, p)
		}
	}
	if len(pairs) == len(s.pairs) {
		return fmt.Errorf("deleting pair %d: %w", id, ErrNotFound)
	}

	if err := s.write(pairs); err != nil {
		return err
	}

	s.pairs = pairs
	s.index = buildIndex(pairs)
	s.logger.Info("deleted qa pair", "id", id)
	return nil
}

// Search ranks the query against questions and answers and returns the best
// match. A score below the store's minimum confidence yields MatchNone with
// the losing score still reported.
func (s *Store) Search(query string) Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index == nil || len(s.pairs) == 0 {
		return Match{Kind: MatchNone}
	}

	qIdx, qScore := s.index.bestQuestion(query)
	aIdx, aScore := s.index.bestAnswer(query)

	switch {
	case qScore >= aScore && qScore >= s.minConfidence:
		return Match{Pair: s.pairs[qIdx], Confidence: qScore, Kind: MatchQuestion}
	case aScore >= s.minConfidence:
		return Match{Pair: s.pairs[aIdx], Confidence: aScore, Kind: MatchReverse}
	default:
		return Match{Confidence: max(qScore, aScore), Kind: MatchNone}
	}
}

// read loads the Q&A file under a shared file lock.
func (s *Store) read() ([]Pair, error) {
	if err := s.flock.RLock(); err != nil {
		return nil, fmt.Errorf("locking data file: %w", err)
	}
	defer func() {
		if err := s.flock.Unlock(); err != nil {
			s.logger.Warn("unlocking data file", "error", err)
		}
	}()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return f.Pairs, nil
}

// write persists pairs atomically: marshal, write to a temp file in the same
// directory, then rename over the data file while holding the file lock.
func (s *Store) write(pairs []Pair) error {
	data, err := json.MarshalIndent(file{Pairs: pairs}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding knowledge base: %w", err)
	}

	if err := s.flock.Lock(); err != nil {
		return fmt.Errorf("locking data file: %w", err)
	}
	defer func() {
		if err := s.flock.Unlock(); err != nil {
			s.logger.Warn("unlocking data file", "error", err)
		}
	}()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), qaFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}
