package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"reset password account login",
	"password reset email link",
	"forgot login password help",
	"pricing plans cost monthly",
	"cost pricing enterprise discount",
	"monthly plan pricing upgrade",
}

func TestRunDeterministic(t *testing.T) {
	opts := Options{Clusters: 2, Components: 3, Seed: 42}
	a, err := Run(corpus, opts)
	require.NoError(t, err)
	b, err := Run(corpus, opts)
	require.NoError(t, err)

	require.Equal(t, a.K, b.K)
	require.Len(t, a.Assignments, len(corpus))
	for i := range a.Assignments {
		assert.Equal(t, a.Assignments[i].ClusterID, b.Assignments[i].ClusterID)
		assert.InDelta(t, a.Assignments[i].DistanceToCentroid, b.Assignments[i].DistanceToCentroid, 1e-12)
	}
	assert.Equal(t, a.Scatter, b.Scatter)
}

func TestRunSeparatesTopics(t *testing.T) {
	res, err := Run(corpus, Options{Clusters: 2, Components: 3, Seed: 42})
	require.NoError(t, err)
	require.Equal(t, 2, res.K)
	// the three password docs should land together, as should the three
	// pricing docs
	assert.Equal(t, res.Assignments[0].ClusterID, res.Assignments[1].ClusterID)
	assert.Equal(t, res.Assignments[1].ClusterID, res.Assignments[2].ClusterID)
	assert.Equal(t, res.Assignments[3].ClusterID, res.Assignments[4].ClusterID)
	assert.Equal(t, res.Assignments[4].ClusterID, res.Assignments[5].ClusterID)
	assert.NotEqual(t, res.Assignments[0].ClusterID, res.Assignments[3].ClusterID)
}

func TestRunDegenerateCorpus(t *testing.T) {
	res, err := Run([]string{"reset password"}, Options{Clusters: 5, Components: 10, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, 1, res.K)
	require.Len(t, res.Assignments, 1)
	assert.Equal(t, 0, res.Assignments[0].ClusterID)
	assert.InDelta(t, 0, res.Assignments[0].DistanceToCentroid, 1e-9)
}

func TestRunEmptyCorpus(t *testing.T) {
	res, err := Run(nil, Options{Clusters: 3, Components: 2, Seed: 42})
	require.NoError(t, err)
	assert.True(t, res.Empty)
	assert.Empty(t, res.Assignments)
}

func TestVectorizerFitTransform(t *testing.T) {
	v := NewVectorizer(VectorizerOptions{})
	require.NoError(t, v.Fit([]string{"reset password", "password help"}))
	assert.Equal(t, 3, v.VocabSize())

	rows, err := v.Transform([]string{"reset password", "unknown terms"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// known terms produce a unit vector, unknown terms a zero vector
	var norm float64
	for _, x := range rows[0] {
		norm += x * x
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
	for _, x := range rows[1] {
		assert.Zero(t, x)
	}
}

func TestVectorizerTwoPhaseContract(t *testing.T) {
	v := NewVectorizer(VectorizerOptions{})
	_, err := v.Transform([]string{"text"})
	require.Error(t, err, "transform before fit must fail")
	require.Error(t, v.Fit(nil), "fitting on zero documents is undefined")
}

func TestVectorizerPruneFallback(t *testing.T) {
	// MinDF 3 would empty the vocabulary of a tiny corpus; the vectorizer
	// falls back to keeping every term instead
	v := NewVectorizer(VectorizerOptions{MinDF: 3})
	require.NoError(t, v.Fit([]string{"alpha beta", "gamma delta"}))
	assert.Equal(t, 4, v.VocabSize())
}

func TestReduceSVDClampsComponents(t *testing.T) {
	rows := [][]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
	}
	out, err := ReduceSVD(rows, 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Len(t, out[0], 2, "k clamps to min(k, rows, cols)")
}

func TestKMeansStableUnderSeed(t *testing.T) {
	vecs := [][]float64{{0, 0}, {0.1, 0}, {5, 5}, {5.1, 5}}
	a1, _ := kmeans(vecs, 2, 7)
	a2, _ := kmeans(vecs, 2, 7)
	assert.Equal(t, a1, a2)
	assert.Equal(t, a1[0], a1[1])
	assert.Equal(t, a1[2], a1[3])
	assert.NotEqual(t, a1[0], a1[2])
}
