package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler стандартизация: z = (x - mean) / std.
// Используется стандартное отклонение генеральной совокупности; при нулевом
// отклонении колонка только центрируется.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// FitStandardScaler считает параметры по колонкам. columns[i] это значения i-й колонки.
func FitStandardScaler(columns [][]float64) *StandardScaler {
	s := &StandardScaler{
		Mean:  make([]float64, len(columns)),
		Scale: make([]float64, len(columns)),
	}
	for i, col := range columns {
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.Mean[i] = mean
		s.Scale[i] = std
	}
	return s
}

// Transform стандартизирует одну строку.
func (s *StandardScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.Mean) {
		return nil, fmt.Errorf("%w: scaler ожидает %d колонок, получено %d", ErrShape, len(s.Mean), len(values))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out, nil
}
