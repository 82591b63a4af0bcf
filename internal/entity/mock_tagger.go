package entity

import (
	"context"
	"regexp"
	"strings"

	"query-insights-go/internal/types"
)

// MockTagger is the offline tagger: a tiny gazetteer plus a date pattern.
// Deterministic, used for demos and tests.
type MockTagger struct {
	// Gazetteer maps lowercase surface forms to labels. Defaults cover a
	// handful of common product/company names.
	Gazetteer map[string]string
}

var dateRe = regexp.MustCompile(`\b(\d{4}|january|february|march|april|may|june|july|august|september|october|november|december|today|tomorrow|yesterday)\b`)

func NewMockTagger() *MockTagger {
	return &MockTagger{
		Gazetteer: map[string]string{
			"iphone":  "PRODUCT",
			"android": "PRODUCT",
			"windows": "PRODUCT",
			"excel":   "PRODUCT",
			"apple":   "ORG",
			"google":  "ORG",
			"amazon":  "ORG",
		},
	}
}

func (m *MockTagger) Tag(_ context.Context, text string) ([]types.Entity, error) {
	var out []types.Entity
	for surface, label := range m.Gazetteer {
		idx := strings.Index(text, surface)
		if idx < 0 {
			continue
		}
		out = append(out, types.Entity{
			Text:  text[idx : idx+len(surface)],
			Label: label,
			Start: idx,
			End:   idx + len(surface),
		})
	}
	for _, loc := range dateRe.FindAllStringIndex(text, -1) {
		out = append(out, types.Entity{
			Text:  text[loc[0]:loc[1]],
			Label: "DATE",
			Start: loc[0],
			End:   loc[1],
		})
	}
	return Filter(out), nil
}
