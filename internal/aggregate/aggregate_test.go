package aggregate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"query-insights-go/internal/types"
)

func sampleInput() Input {
	records := []types.CleanedRecord{
		{ID: "a", Title: "How do I reset my password?", NormalizedText: "how do i reset my password?"},
		{ID: "b", Title: "Pricing info", NormalizedText: "pricing info"},
	}
	return Input{
		Records: records,
		IDs:     []string{"a", "b"},
		Annotations: []types.Annotation{
			{QuestionType: types.QuestionHow, Entities: []types.Entity{}, FunnelStage: types.StageRetention, FunnelConfidence: 0.8},
			{QuestionType: types.QuestionNone, Entities: []types.Entity{}, FunnelStage: types.StageDecision, FunnelConfidence: 0.5},
		},
		Clusters: []types.ClusterAssignment{
			{ClusterID: 0, DistanceToCentroid: 0.1},
			{ClusterID: 1, DistanceToCentroid: 0.2},
		},
		IngestDrops:    1,
		NormalizeDrops: 2,
	}
}

func TestMerge(t *testing.T) {
	out, summary, err := Merge(sampleInput())
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, types.QuestionHow, out[0].QuestionType)
	assert.Equal(t, 0, out[0].ClusterID)
	assert.Equal(t, 6, out[0].QuestionLength)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.IngestDrops)
	assert.Equal(t, 2, summary.NormalizeDrops)
	assert.Equal(t, 1, summary.ByQuestionType[types.QuestionHow])
	assert.Equal(t, 1, summary.ByQuestionType[types.QuestionNone])
	assert.Equal(t, 1, summary.ByFunnelStage[types.StageRetention])
	assert.Equal(t, 1, summary.ByCluster[0])
	assert.Equal(t, 1, summary.ByCluster[1])
}

func TestMergeCountMismatchIsFatal(t *testing.T) {
	in := sampleInput()
	in.Annotations = in.Annotations[:1]
	_, _, err := Merge(in)
	var aggErr *types.AggregationError
	require.True(t, errors.As(err, &aggErr))
	assert.Equal(t, "annotate", aggErr.Stage)

	in = sampleInput()
	in.Clusters = nil
	_, _, err = Merge(in)
	require.True(t, errors.As(err, &aggErr))
	assert.Equal(t, "cluster", aggErr.Stage)
}

func TestMergeIdentityMismatchIsFatal(t *testing.T) {
	in := sampleInput()
	in.IDs = []string{"a", "WRONG"}
	_, _, err := Merge(in)
	var aggErr *types.AggregationError
	require.True(t, errors.As(err, &aggErr))
	assert.Equal(t, "identity", aggErr.Stage)
}

func TestMergeEmptyRun(t *testing.T) {
	out, summary, err := Merge(Input{Degradations: []string{types.DegradedEmptyCorpus}})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, summary.Processed)
	assert.Contains(t, summary.DegradationFlags, types.DegradedEmptyCorpus)
}
