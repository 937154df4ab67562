package knowledge

// Pair is a single question/answer record in the knowledge base.
type Pair struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// file is the on-disk shape of the Q&A data file.
type file struct {
	Pairs []Pair `json:"qa_pairs"`
}

// MatchKind classifies how a search query matched the knowledge base.
type MatchKind string

const (
	// MatchQuestion means the query matched a stored question.
	MatchQuestion MatchKind = "question_match"

	// MatchReverse means the query matched a stored answer (entity lookup).
	MatchReverse MatchKind = "reverse_lookup"

	// MatchNone means no pair scored above the minimum confidence.
	MatchNone MatchKind = "no_match"
)

// Match is the result of a knowledge base search.
type Match struct {
	// Pair is the best-matching record. Zero value when Kind is MatchNone.
	Pair Pair

	// Confidence is the cosine similarity of the best match, in [0, 1].
	// Set even when Kind is MatchNone (the score that failed the cutoff).
	Confidence float64

	// Kind classifies the match.
	Kind MatchKind
}

// Analysis describes the surface form of a chat query.
type Analysis struct {
	IsQuestion  bool
	IsGreeting  bool
	IsFarewell  bool
	IsSmallTalk bool
}
