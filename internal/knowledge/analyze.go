package knowledge

import (
	"regexp"
	"strings"
)

// Query-shape patterns. Compiled once; regexp is safe for concurrent use.
var (
	greetingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(hi|hello|hey|salam|assalam|assalamualaikum)\b`),
		regexp.MustCompile(`\bgood\s+(morning|afternoon|evening)\b`),
	}

	farewellPattern = regexp.MustCompile(`\b(bye|goodbye|see\s+you|thanks|thank\s+you|khuda\s+hafiz)\b`)

	smallTalkPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(how\s+are\s+you|what's\s+up|how\s+is\s+it\s+going)\b`),
		regexp.MustCompile(`\b(what\s+can\s+you\s+do|what\s+do\s+you\s+know)\b`),
	}

	questionWords = []string{"what", "who", "when", "where", "why", "how", "which"}
)

// Analyze classifies the surface form of a chat query so the responder can
// pick greetings, farewells, and small talk off before hitting the index.
func Analyze(query string) Analysis {
	lower := strings.ToLower(strings.TrimSpace(query))

	var a Analysis

	for _, w := range questionWords {
		if strings.Contains(lower, w) {
			a.IsQuestion = true
			break
		}
	}
	if strings.HasSuffix(strings.TrimSpace(query), "?") {
		a.IsQuestion = true
	}

	for _, re := range greetingPatterns {
		if re.MatchString(lower) {
			a.IsGreeting = true
			break
		}
	}

	a.IsFarewell = farewellPattern.MatchString(lower)

	for _, re := range smallTalkPatterns {
		if re.MatchString(lower) {
			a.IsSmallTalk = true
			break
		}
	}

	return a
}
