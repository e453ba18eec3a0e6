package engine

import (
	"fmt"
	"math"
)

// StandardScaler standardizes feature vectors to zero mean and unit variance
// per column, using statistics captured at fit time.
type StandardScaler struct {
	Means []float64
	Stds  []float64
}

// NewStandardScaler creates an unfitted scaler
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit computes per-column mean and standard deviation from training rows
func (s *StandardScaler) Fit(rows [][]float64) error {
	if len(rows) == 0 {
		return fmt.Errorf("cannot fit scaler on empty data")
	}

	cols := len(rows[0])
	s.Means = make([]float64, cols)
	s.Stds = make([]float64, cols)

	for _, row := range rows {
		if len(row) != cols {
			return fmt.Errorf("inconsistent row width: expected %d, got %d", cols, len(row))
		}
		for j, v := range row {
			s.Means[j] += v
		}
	}
	n := float64(len(rows))
	for j := range s.Means {
		s.Means[j] /= n
	}

	for _, row := range rows {
		for j, v := range row {
			d := v - s.Means[j]
			s.Stds[j] += d * d
		}
	}
	for j := range s.Stds {
		s.Stds[j] = math.Sqrt(s.Stds[j] / n)
		// constant columns pass through unscaled
		if s.Stds[j] == 0 {
			s.Stds[j] = 1
		}
	}

	return nil
}

// Transform standardizes a single feature vector
func (s *StandardScaler) Transform(row []float64) ([]float64, error) {
	if len(s.Means) == 0 {
		return nil, fmt.Errorf("scaler has not been fitted")
	}
	if len(row) != len(s.Means) {
		return nil, fmt.Errorf("feature width mismatch: expected %d, got %d", len(s.Means), len(row))
	}

	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Means[j]) / s.Stds[j]
	}
	return out, nil
}

// TransformAll standardizes a batch of feature vectors
func (s *StandardScaler) TransformAll(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled, err := s.Transform(row)
		if err != nil {
			return nil, err
		}
		out[i] = scaled
	}
	return out, nil
}
