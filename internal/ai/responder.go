package ai

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/project-mangla/apsaiassistant/internal/knowledge"
	"github.com/project-mangla/apsaiassistant/internal/log"
	"github.com/project-mangla/apsaiassistant/internal/session"
)

// Searcher is the slice of the knowledge store the responder needs.
type Searcher interface {
	Search(query string) knowledge.Match
}

// Reply is what the responder hands back to the chat endpoint.
// Confidence is pre-formatted with two decimals, matching the wire format.
type Reply struct {
	Response   string `json:"response"`
	Confidence string `json:"confidence"`
}

// Thresholds control where the confidence ladder switches strategy.
type Thresholds struct {
	// Medium is the floor for template-wrapped answers.
	Medium float64
	// High is the floor for AI-rephrased answers.
	High float64
}

// Responder decides how to answer a chat message: canned template, direct
// knowledge base answer, or an AI-rephrased one.
type Responder struct {
	searcher   Searcher
	enhancer   Enhancer
	thresholds Thresholds
	logger     log.Logger
}

// NewResponder wires the decision ladder. enhancer may be nil, in which
// case every answer uses templates.
func NewResponder(searcher Searcher, enhancer Enhancer, thresholds Thresholds, logger log.Logger) *Responder {
	return &Responder{
		searcher:   searcher,
		enhancer:   enhancer,
		thresholds: thresholds,
		logger:     logger,
	}
}

// Respond produces a reply for the visitor's message. history is the
// session's remembered exchanges, oldest first; it is only consulted for
// follow-up questions like "and?" or "what else?".
//
// A panic anywhere in the ladder degrades to an apology reply; the visitor
// always gets an answer.
func (r *Responder) Respond(ctx context.Context, input string, history []session.Exchange) (reply Reply) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("responding to message", "panic", rec)
			reply = Reply{Response: internalErrorResponse, Confidence: "0.00"}
		}
	}()

	if isFollowUp(input) && len(history) > 0 {
		return r.respondFollowUp(ctx, input, history)
	}

	analysis := knowledge.Analyze(input)

	switch {
	case analysis.IsGreeting:
		return Reply{Response: pick(greetingTemplates), Confidence: "1.00"}
	case analysis.IsFarewell:
		return Reply{Response: pick(farewellTemplates), Confidence: "1.00"}
	case analysis.IsSmallTalk:
		return Reply{Response: smallTalkResponse(input), Confidence: "1.00"}
	}

	match := r.searcher.Search(input)

	switch {
	case match.Kind != knowledge.MatchNone && match.Confidence >= r.thresholds.High:
		return r.respondEnhanced(ctx, input, match)
	case match.Kind != knowledge.MatchNone && match.Confidence >= r.thresholds.Medium:
		return templateReply(match)
	default:
		return noMatchReply(analysis)
	}
}

// respondEnhanced rephrases a high-confidence answer via the model,
// degrading to the template response when the call fails.
func (r *Responder) respondEnhanced(ctx context.Context, input string, match knowledge.Match) Reply {
	if r.enhancer == nil {
		return templateReply(match)
	}

	systemPrompt := questionSystemPrompt
	userPrompt := questionUserPrompt(input, match.Pair.Answer)
	if match.Kind == knowledge.MatchReverse {
		systemPrompt = reverseLookupSystemPrompt
		userPrompt = reverseLookupUserPrompt(input, match.Pair.Answer)
	}

	enhanced, err := r.enhancer.Enhance(ctx, systemPrompt, userPrompt)
	if err != nil {
		r.logger.Error("enhancing response", "error", err, "kind", string(match.Kind))
		return templateReply(match)
	}

	return Reply{
		Response:   enhanced,
		Confidence: formatConfidence(match.Confidence),
	}
}

// respondFollowUp answers "and?"-style messages from conversation context.
func (r *Responder) respondFollowUp(ctx context.Context, input string, history []session.Exchange) Reply {
	if len(history) == 0 {
		return Reply{Response: followUpNoContext, Confidence: "0.00"}
	}

	last := history[len(history)-1]
	lastConfidence, err := strconv.ParseFloat(last.Confidence, 64)
	if err != nil {
		lastConfidence = 0
	}

	if lastConfidence < r.thresholds.High {
		return Reply{Response: followUpLowConfidence, Confidence: "0.00"}
	}

	if r.enhancer != nil {
		expanded, err := r.enhancer.Enhance(ctx, followUpSystemPrompt,
			followUpUserPrompt(last.UserMessage, last.BotResponse, input))
		if err == nil {
			return Reply{Response: expanded, Confidence: "0.75"}
		}
		r.logger.Error("expanding previous answer", "error", err)
	}

	return Reply{
		Response:   fmt.Sprintf(followUpExpandFallback, last.UserMessage),
		Confidence: "0.50",
	}
}

// templateReply wraps the stored answer in a short lead-in.
func templateReply(match knowledge.Match) Reply {
	lead := "According to my information about APS Mangla, "
	if match.Kind == knowledge.MatchReverse {
		lead = "Based on what I know about APS Mangla, "
	}
	return Reply{
		Response:   lead + strings.ToLower(match.Pair.Answer),
		Confidence: formatConfidence(match.Confidence),
	}
}

func noMatchReply(analysis knowledge.Analysis) Reply {
	pool := noMatchTemplates
	if analysis.IsQuestion {
		pool = unansweredQuestionTemplates
	}
	return Reply{Response: pick(pool), Confidence: "0.00"}
}

func smallTalkResponse(input string) string {
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "how are you") || strings.Contains(lower, "how is it going"):
		return smallTalkHowAreYou
	case strings.Contains(lower, "what can you do") || strings.Contains(lower, "what do you know"):
		return smallTalkWhatCanDo
	default:
		return smallTalkDefault
	}
}

// followUpPhrases are exact short messages treated as follow-ups.
var followUpPhrases = map[string]bool{
	"and?": true, "and what else?": true, "what else?": true, "more": true,
	"tell me more": true, "anything else?": true, "what about the rest?": true,
	"continue": true, "go on": true, "what more?": true, "others?": true,
	"rest?": true, "more info": true, "more information": true,
}

// isFollowUp reports whether the message looks like a continuation of the
// previous exchange rather than a new question.
func isFollowUp(input string) bool {
	lower := strings.ToLower(strings.TrimSpace(input))
	if followUpPhrases[lower] {
		return true
	}
	return strings.HasSuffix(lower, "?") && len(strings.Fields(lower)) <= 3
}

func formatConfidence(c float64) string {
	return fmt.Sprintf("%.2f", c)
}
