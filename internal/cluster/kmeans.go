package cluster

import (
	"math"
	"math/rand"
)

const maxKMeansIterations = 100

// kmeans partitions the vectors into k clusters with Lloyd's algorithm under
// Euclidean distance. Initial centroids are k distinct vectors chosen by the
// seeded source, so assignments are reproducible for a fixed corpus order,
// seed and k. Equal distances break toward the lower cluster id.
func kmeans(vectors [][]float64, k int, seed int64) (assignments []int, centroids [][]float64) {
	n := len(vectors)
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	centroids = initCentroids(vectors, k, seed)

	assignments = make([]int, n)
	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, v := range vectors {
			c := nearest(v, centroids)
			if c != assignments[i] {
				assignments[i] = c
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		dim := len(vectors[0])
		sums := make([][]float64, k)
		counts := make([]int, k)
		for i := range sums {
			sums[i] = make([]float64, dim)
		}
		for i, v := range vectors {
			c := assignments[i]
			counts[c]++
			for j, x := range v {
				sums[c][j] += x
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// cluster lost all members; its centroid stays put
				continue
			}
			for j := range sums[c] {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}
	return assignments, centroids
}

// initCentroids seeds Lloyd's with farthest-point placement: the first
// centroid comes from the seeded source, each further one is the point
// farthest from every centroid chosen so far (ties to the lower index).
func initCentroids(vectors [][]float64, k int, seed int64) [][]float64 {
	n := len(vectors)
	rng := rand.New(rand.NewSource(seed))

	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), vectors[rng.Intn(n)]...))

	minDist := make([]float64, n)
	for i, v := range vectors {
		minDist[i] = sqDist(v, centroids[0])
	}
	for len(centroids) < k {
		far := 0
		for i := 1; i < n; i++ {
			if minDist[i] > minDist[far] {
				far = i
			}
		}
		centroids = append(centroids, append([]float64(nil), vectors[far]...))
		for i, v := range vectors {
			if d := sqDist(v, centroids[len(centroids)-1]); d < minDist[i] {
				minDist[i] = d
			}
		}
	}
	return centroids
}

func nearest(v []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, cent := range centroids {
		if d := sqDist(v, cent); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func euclidean(a, b []float64) float64 {
	return math.Sqrt(sqDist(a, b))
}
