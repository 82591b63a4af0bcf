// Package report derives the read-only views the reporting collaborator
// renders: funnel distribution, confidence histogram, 2-D cluster scatter,
// question-type breakdown and sample questions per cluster. Views are plain
// data; rendering them to images is someone else's job.
package report

import (
	"math/rand"
	"sort"

	"query-insights-go/internal/types"
)

// StageCount is one funnel distribution bucket, in funnel order.
type StageCount struct {
	Stage types.FunnelStage `json:"stage"`
	Count int               `json:"count"`
}

// FunnelDistribution counts records per stage, ordered Awareness first.
func FunnelDistribution(records []types.LabeledRecord) []StageCount {
	counts := map[types.FunnelStage]int{}
	for _, r := range records {
		counts[r.FunnelStage]++
	}
	out := make([]StageCount, 0, len(types.FunnelStages))
	for _, s := range types.FunnelStages {
		out = append(out, StageCount{Stage: s, Count: counts[s]})
	}
	return out
}

// HistogramBin is one fixed-width confidence bucket over [0,1].
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// ConfidenceHistogram bins funnel confidences into bins equal-width buckets.
func ConfidenceHistogram(records []types.LabeledRecord, bins int) []HistogramBin {
	if bins < 1 {
		bins = 10
	}
	out := make([]HistogramBin, bins)
	width := 1.0 / float64(bins)
	for i := range out {
		out[i].Low = float64(i) * width
		out[i].High = float64(i+1) * width
	}
	for _, r := range records {
		idx := int(r.FunnelConfidence / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}

// ScatterPoint is one record positioned in the 2-D projection.
type ScatterPoint struct {
	RecordID string  `json:"record_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Cluster  int     `json:"cluster"`
}

// ClusterScatter pairs each record with its 2-D coordinates. scatter must be
// index-aligned with records; a shorter scatter yields a truncated view.
func ClusterScatter(records []types.LabeledRecord, scatter [][2]float64) []ScatterPoint {
	n := len(records)
	if len(scatter) < n {
		n = len(scatter)
	}
	out := make([]ScatterPoint, n)
	for i := 0; i < n; i++ {
		out[i] = ScatterPoint{
			RecordID: records[i].ID,
			X:        scatter[i][0],
			Y:        scatter[i][1],
			Cluster:  records[i].ClusterID,
		}
	}
	return out
}

// QuestionTypesByCluster breaks question types down per cluster id.
func QuestionTypesByCluster(records []types.LabeledRecord) map[int]map[types.QuestionType]int {
	out := map[int]map[types.QuestionType]int{}
	for _, r := range records {
		if out[r.ClusterID] == nil {
			out[r.ClusterID] = map[types.QuestionType]int{}
		}
		out[r.ClusterID][r.QuestionType]++
	}
	return out
}

// SampleQuestions picks up to n question-classified titles per cluster,
// seeded so the samples are reproducible.
func SampleQuestions(records []types.LabeledRecord, n int, seed int64) map[int][]string {
	byCluster := map[int][]string{}
	for _, r := range records {
		if r.QuestionType == types.QuestionNone {
			continue
		}
		byCluster[r.ClusterID] = append(byCluster[r.ClusterID], r.Title)
	}

	clusters := make([]int, 0, len(byCluster))
	for c := range byCluster {
		clusters = append(clusters, c)
	}
	sort.Ints(clusters)

	rng := rand.New(rand.NewSource(seed))
	out := map[int][]string{}
	for _, c := range clusters {
		titles := byCluster[c]
		if len(titles) <= n {
			out[c] = titles
			continue
		}
		perm := rng.Perm(len(titles))[:n]
		sort.Ints(perm)
		picked := make([]string, 0, n)
		for _, p := range perm {
			picked = append(picked, titles[p])
		}
		out[c] = picked
	}
	return out
}
