package ml

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RobustScaler centers on the per-column median and scales by the
// interquartile range, so the heavy-tailed dollar columns cannot swamp the
// bounded score columns. Fields are exported for gob persistence.
type RobustScaler struct {
	Center []float64
	Scale  []float64
}

// Fit computes medians and IQRs over the training matrix.
func (s *RobustScaler) Fit(X [][]float64) {
	if len(X) == 0 {
		return
	}
	cols := len(X[0])
	s.Center = make([]float64, cols)
	s.Scale = make([]float64, cols)

	col := make([]float64, len(X))
	for j := 0; j < cols; j++ {
		for i, row := range X {
			col[i] = row[j]
		}
		sort.Float64s(col)
		s.Center[j] = stat.Quantile(0.5, stat.Empirical, col, nil)
		iqr := stat.Quantile(0.75, stat.Empirical, col, nil) -
			stat.Quantile(0.25, stat.Empirical, col, nil)
		if iqr == 0 {
			iqr = 1 // constant column: center only
		}
		s.Scale[j] = iqr
	}
}

// Transform scales a single row. The input is not modified.
func (s *RobustScaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Center[j]) / s.Scale[j]
	}
	return out
}

// TransformAll scales a matrix row by row.
func (s *RobustScaler) TransformAll(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = s.Transform(row)
	}
	return out
}
