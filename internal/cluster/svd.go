package cluster

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ReduceSVD projects the row vectors onto their top-k left singular
// directions scaled by the singular values (truncated SVD). k is clamped to
// min(k, rows, cols); the returned matrix is rows x effective k.
func ReduceSVD(rows [][]float64, k int) ([][]float64, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("svd: no rows")
	}
	d := len(rows[0])
	if d == 0 {
		return nil, fmt.Errorf("svd: zero-width rows")
	}
	if k > n {
		k = n
	}
	if k > d {
		k = d
	}
	if k < 1 {
		k = 1
	}

	a := mat.NewDense(n, d, nil)
	for i, row := range rows {
		a.SetRow(i, row)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("svd: factorization failed")
	}
	var u mat.Dense
	svd.UTo(&u)
	s := svd.Values(nil)

	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, k)
		for j := 0; j < k; j++ {
			row[j] = u.At(i, j) * s[j]
		}
		out[i] = row
	}
	return out, nil
}
