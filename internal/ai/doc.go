// Package ai turns knowledge base matches into conversational replies.
//
// The Responder applies a confidence ladder: high-confidence matches are
// rephrased by Gemini into a natural answer, medium-confidence matches get
// a canned template wrapper, and everything else falls back to contextual
// no-match responses. Greetings, farewells, small talk, and short follow-up
// questions are answered without touching the knowledge base.
//
// Gemini access goes through the Enhancer interface so handlers and tests
// can swap in a stub. Any enhancement failure degrades to the template
// response; the chat endpoint never fails because the model did.
package ai
