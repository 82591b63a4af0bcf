// Package aggregate zips the per-record annotator and clustering outputs
// back onto their originating records. A count mismatch between stages is a
// correctness violation and aborts the run, never a recoverable input error.
package aggregate

import (
	"query-insights-go/internal/question"
	"query-insights-go/internal/types"
)

// Input bundles the index-aligned stage outputs for one run. Annotations[i]
// and Clusters[i] belong to Records[i]; the annotators preserve identity by
// position even when executed concurrently.
type Input struct {
	Records     []types.CleanedRecord
	IDs         []string // record id per annotation row, for the identity check
	Annotations []types.Annotation
	Clusters    []types.ClusterAssignment

	FilesRead      int
	FilesSkipped   int
	IngestDrops    int
	NormalizeDrops int
	DuplicateDrops int
	Degradations   []string
}

// Merge builds the final labeled records and the run summary.
func Merge(in Input) ([]types.LabeledRecord, types.RunSummary, error) {
	n := len(in.Records)
	if len(in.Annotations) != n {
		return nil, types.RunSummary{}, &types.AggregationError{Stage: "annotate", Want: n, Got: len(in.Annotations)}
	}
	if len(in.Clusters) != n {
		return nil, types.RunSummary{}, &types.AggregationError{Stage: "cluster", Want: n, Got: len(in.Clusters)}
	}
	if len(in.IDs) != n {
		return nil, types.RunSummary{}, &types.AggregationError{Stage: "identity", Want: n, Got: len(in.IDs)}
	}
	for i, id := range in.IDs {
		if id != in.Records[i].ID {
			return nil, types.RunSummary{}, &types.AggregationError{Stage: "identity", Want: n, Got: i}
		}
	}

	summary := types.RunSummary{
		FilesRead:      in.FilesRead,
		FilesSkipped:   in.FilesSkipped,
		Processed:      n,
		IngestDrops:    in.IngestDrops,
		NormalizeDrops: in.NormalizeDrops,
		DuplicateDrops: in.DuplicateDrops,
		ByQuestionType: map[types.QuestionType]int{},
		ByFunnelStage:  map[types.FunnelStage]int{},
		ByCluster:      map[int]int{},
	}
	summary.DegradationFlags = append(summary.DegradationFlags, in.Degradations...)

	out := make([]types.LabeledRecord, n)
	for i, rec := range in.Records {
		ann := in.Annotations[i]
		cl := in.Clusters[i]
		out[i] = types.LabeledRecord{
			CleanedRecord:     rec,
			Annotation:        ann,
			ClusterAssignment: cl,
			QuestionLength:    question.Length(rec.NormalizedText),
		}
		summary.ByQuestionType[ann.QuestionType]++
		summary.ByFunnelStage[ann.FunnelStage]++
		summary.ByCluster[cl.ClusterID]++
	}
	return out, summary, nil
}
