package entity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"query-insights-go/internal/types"
)

type stubTagger struct {
	entities []types.Entity
	err      error
}

func (s *stubTagger) Tag(_ context.Context, _ string) ([]types.Entity, error) {
	return s.entities, s.err
}

func TestFilter(t *testing.T) {
	in := []types.Entity{
		{Text: "march", Label: "date", Start: 10, End: 15},
		{Text: "acme", Label: "ORG", Start: 0, End: 4},
		{Text: "ten", Label: "CARDINAL", Start: 20, End: 23}, // unsupported
		{Text: "acme corp", Label: "ORG", Start: 2, End: 11}, // overlaps acme
	}
	out := Filter(in)
	require.Len(t, out, 2)
	assert.Equal(t, "acme", out[0].Text)
	assert.Equal(t, "ORG", out[0].Label)
	assert.Equal(t, "march", out[1].Text)
	assert.Equal(t, "DATE", out[1].Label, "labels normalize to upper case")
}

func TestAnnotateDegradesWhenOracleDown(t *testing.T) {
	tagger := &stubTagger{err: &types.OracleUnavailable{Oracle: "entity-tagger", Err: errors.New("connection refused")}}
	ents, degraded, err := Annotate(context.Background(), tagger, "how do i reset my password")
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Empty(t, ents)
	assert.NotNil(t, ents, "degraded result is an empty list, not nil")
}

func TestAnnotatePassesThroughOtherErrors(t *testing.T) {
	tagger := &stubTagger{err: errors.New("boom")}
	_, degraded, err := Annotate(context.Background(), tagger, "text")
	require.Error(t, err)
	assert.False(t, degraded)
}

func TestMockTagger(t *testing.T) {
	tagger := NewMockTagger()
	ents, err := tagger.Tag(context.Background(), "will the iphone ship by march")
	require.NoError(t, err)
	require.Len(t, ents, 2)
	assert.Equal(t, "PRODUCT", ents[0].Label)
	assert.Equal(t, "iphone", ents[0].Text)
	assert.Equal(t, "DATE", ents[1].Label)
	assert.Equal(t, "march", ents[1].Text)
}
