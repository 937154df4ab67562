package knowledge

import "testing"

func TestAnalyze(t *testing.T) {
	tests := []struct {
		query string
		want  Analysis
	}{
		{"hello there", Analysis{IsGreeting: true}},
		{"Assalamualaikum", Analysis{IsGreeting: true}},
		{"good morning", Analysis{IsGreeting: true}},
		{"bye", Analysis{IsFarewell: true}},
		{"thank you", Analysis{IsFarewell: true}},
		{"khuda hafiz", Analysis{IsFarewell: true}},
		{"how are you", Analysis{IsQuestion: true, IsSmallTalk: true}},
		{"what can you do", Analysis{IsQuestion: true, IsSmallTalk: true}},
		{"who is the principal?", Analysis{IsQuestion: true}},
		{"school timings", Analysis{}},
		{"admissions?", Analysis{IsQuestion: true}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := Analyze(tt.query); got != tt.want {
				t.Errorf("Analyze(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}
