package funnel

import (
	"context"
	"strings"
)

// MockScorer is the offline zero-shot stand-in: keyword cues per stage with
// a flat floor so every label always gets a score. Deterministic.
type MockScorer struct{}

var stageCues = map[string][]string{
	"Awareness":     {"what", "meaning", "definition", "intro", "learn", "guide"},
	"Consideration": {"compare", "vs", "better", "best", "review", "alternative", "which"},
	"Decision":      {"price", "pricing", "cost", "buy", "discount", "sign up", "trial", "order"},
	"Retention":     {"reset", "fix", "error", "cancel", "renew", "update", "help", "support", "password"},
	"Advocacy":      {"recommend", "refer", "share", "testimonial", "rate"},
}

func NewMockScorer() *MockScorer { return &MockScorer{} }

func (m *MockScorer) Score(_ context.Context, text string, labels []string) (map[string]float64, error) {
	lower := strings.ToLower(text)
	out := make(map[string]float64, len(labels))
	for _, label := range labels {
		score := 0.1
		for _, cue := range stageCues[label] {
			if strings.Contains(lower, cue) {
				score += 0.5
			}
		}
		out[label] = score
	}
	return out, nil
}
