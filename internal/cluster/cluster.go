// Package cluster builds the shared embedding space for a batch of cleaned
// records and partitions it. The protocol is strictly two-phase: the TF-IDF
// vocabulary is fitted over the entire corpus before any vector exists, so a
// record's embedding depends on the whole batch, never on itself alone.
package cluster

import (
	"fmt"

	"query-insights-go/internal/logger"
	"query-insights-go/internal/types"
)

// Options for one clustering run.
type Options struct {
	Clusters   int   // requested k; reduced to the corpus size when larger
	Components int   // SVD target dimensionality
	Seed       int64 // drives centroid initialization
	Vectorizer VectorizerOptions
}

// Result holds per-record assignments index-aligned with the input corpus,
// plus the 2-D projection the scatter report consumes.
type Result struct {
	Assignments []types.ClusterAssignment
	Scatter     [][2]float64
	K           int
	Empty       bool // corpus was empty, clustering skipped entirely
}

// Run embeds and clusters the corpus. An empty corpus short-circuits to an
// empty result with Empty set; fitting TF-IDF on zero documents is undefined
// and is guarded here, not in the vectorizer.
func Run(texts []string, opts Options) (Result, error) {
	log := logger.New().WithField("component", "cluster")

	if len(texts) == 0 {
		log.Warn("empty corpus, skipping clustering")
		return Result{Empty: true}, nil
	}

	k := opts.Clusters
	if k < 1 {
		k = 1
	}
	if k > len(texts) {
		k = len(texts)
	}

	vec := NewVectorizer(opts.Vectorizer)
	if err := vec.Fit(texts); err != nil {
		return Result{}, fmt.Errorf("fit vectorizer: %w", err)
	}
	if vec.VocabSize() == 0 {
		// nothing to embed: every record lands in one cluster at the origin
		log.Warn("empty vocabulary, collapsing to a single cluster")
		return degenerate(len(texts)), nil
	}

	tfidf, err := vec.Transform(texts)
	if err != nil {
		return Result{}, fmt.Errorf("transform corpus: %w", err)
	}

	components := opts.Components
	if components < 2 {
		components = 2
	}
	reduced, err := ReduceSVD(tfidf, components)
	if err != nil {
		return Result{}, fmt.Errorf("reduce: %w", err)
	}

	assignments, centroids := kmeans(reduced, k, opts.Seed)

	res := Result{
		Assignments: make([]types.ClusterAssignment, len(texts)),
		Scatter:     make([][2]float64, len(texts)),
		K:           len(centroids),
	}
	for i, c := range assignments {
		res.Assignments[i] = types.ClusterAssignment{
			ClusterID:          c,
			DistanceToCentroid: euclidean(reduced[i], centroids[c]),
		}
		res.Scatter[i][0] = reduced[i][0]
		if len(reduced[i]) > 1 {
			res.Scatter[i][1] = reduced[i][1]
		}
	}
	log.WithField("records", len(texts)).WithField("clusters", res.K).
		WithField("vocab", vec.VocabSize()).Info("clustering complete")
	return res, nil
}

func degenerate(n int) Result {
	res := Result{
		Assignments: make([]types.ClusterAssignment, n),
		Scatter:     make([][2]float64, n),
		K:           1,
	}
	return res
}
