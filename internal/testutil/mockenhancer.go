// Package testutil provides shared test doubles for the chatbot service.
package testutil

import (
	"context"
	"strings"
	"sync"
)

// MockEnhancer provides deterministic answer rephrasing for tests.
// It matches the user prompt against registered patterns and returns
// the corresponding response, or the fallback when nothing matches.
//
// Thread-safe for concurrent use.
type MockEnhancer struct {
	mu       sync.Mutex
	rules    []enhancerRule
	fallback string
	err      error
	calls    []EnhanceCall
}

type enhancerRule struct {
	pattern  string // substring match in user prompt, lowercase
	response string
}

// EnhanceCall records a single call to the mock.
type EnhanceCall struct {
	SystemPrompt string
	UserPrompt   string
	Response     string
}

// NewMockEnhancer creates a mock with the given fallback response.
func NewMockEnhancer(fallback string) *MockEnhancer {
	return &MockEnhancer{fallback: fallback}
}

// AddResponse registers a pattern-response pair. When a user prompt
// contains the pattern (case-insensitive), the response is returned.
// Patterns are checked in registration order; first match wins.
func (m *MockEnhancer) AddResponse(pattern, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, enhancerRule{
		pattern:  strings.ToLower(pattern),
		response: response,
	})
}

// Fail makes every subsequent call return err instead of a response.
func (m *MockEnhancer) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns a copy of all recorded calls.
func (m *MockEnhancer) Calls() []EnhanceCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]EnhanceCall, len(m.calls))
	copy(cp, m.calls)
	return cp
}

// Reset clears recorded calls and any forced error (keeps registered rules).
func (m *MockEnhancer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.err = nil
}

// Enhance implements the rephrasing contract used by the responder.
func (m *MockEnhancer) Enhance(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}

	response := m.fallback
	lower := strings.ToLower(userPrompt)
	for _, rule := range m.rules {
		if strings.Contains(lower, rule.pattern) {
			response = rule.response
			break
		}
	}

	m.calls = append(m.calls, EnhanceCall{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Response:     response,
	})

	return response, nil
}
