// Package entity extracts named entities via a pluggable tagging oracle.
// The model is opaque: one string in, zero or more labeled spans out. When
// the oracle is unreachable the record degrades to an empty entity list
// instead of failing the run.
package entity

import (
	"context"
	"errors"
	"sort"
	"strings"

	"query-insights-go/internal/types"
)

// Tagger is the oracle capability: tag(text) -> ordered labeled spans.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]types.Entity, error)
}

// Labels the pipeline keeps; anything else the model emits is filtered out,
// not surfaced as an error.
var supportedLabels = map[string]struct{}{
	"PRODUCT": {},
	"ORG":     {},
	"PERSON":  {},
	"DATE":    {},
}

// Filter drops unsupported labels and overlapping spans (first span wins),
// returning entities ordered by start offset.
func Filter(ents []types.Entity) []types.Entity {
	kept := make([]types.Entity, 0, len(ents))
	for _, e := range ents {
		label := strings.ToUpper(e.Label)
		if _, ok := supportedLabels[label]; !ok {
			continue
		}
		e.Label = label
		kept = append(kept, e)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	out := kept[:0]
	lastEnd := -1
	for _, e := range kept {
		if e.Start < lastEnd {
			continue
		}
		out = append(out, e)
		lastEnd = e.End
	}
	return out
}

// Annotate tags one text, filtering the result. On OracleUnavailable it
// returns an empty list and degraded=true; other errors pass through.
func Annotate(ctx context.Context, t Tagger, text string) (ents []types.Entity, degraded bool, err error) {
	raw, err := t.Tag(ctx, text)
	if err != nil {
		var unavailable *types.OracleUnavailable
		if errors.As(err, &unavailable) {
			return []types.Entity{}, true, nil
		}
		return nil, false, err
	}
	return Filter(raw), false, nil
}
