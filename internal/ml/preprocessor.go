package ml

import (
	"fmt"

	"github.com/ignatzorin/screening-backend/internal/features"
)

// Preprocessor раскладывает вектор по типам колонок: сначала стандартизированные
// числовые колонки, затем one-hot блоки категориальных, каждая группа в порядке схемы.
type Preprocessor struct {
	NumericIndex     []int           `json:"numeric_index"`
	CategoricalIndex []int           `json:"categorical_index"`
	Scaler           *StandardScaler `json:"scaler"`
	Encoder          *OneHotEncoder  `json:"encoder"`
}

// FitPreprocessor обучает scaler и encoder на строках обучающей выборки.
func FitPreprocessor(schema features.Schema, rows []features.Vector) (*Preprocessor, error) {
	p := &Preprocessor{NumericIndex: []int{}, CategoricalIndex: []int{}}
	for i, f := range schema.Fields {
		if f.Kind == features.KindCategorical {
			p.CategoricalIndex = append(p.CategoricalIndex, i)
		} else {
			p.NumericIndex = append(p.NumericIndex, i)
		}
	}

	numeric := make([][]float64, len(p.NumericIndex))
	categorical := make([][]string, len(p.CategoricalIndex))
	for r, row := range rows {
		if len(row) != len(schema.Fields) {
			return nil, fmt.Errorf("%w: строка %d содержит %d колонок вместо %d", ErrShape, r, len(row), len(schema.Fields))
		}
		for j, idx := range p.NumericIndex {
			numeric[j] = append(numeric[j], row[idx].Number)
		}
		for j, idx := range p.CategoricalIndex {
			categorical[j] = append(categorical[j], row[idx].Category)
		}
	}

	p.Scaler = FitStandardScaler(numeric)
	p.Encoder = FitOneHotEncoder(categorical)
	return p, nil
}

// Width размер выходного вектора.
func (p *Preprocessor) Width() int {
	return len(p.NumericIndex) + p.Encoder.Width()
}

// Transform превращает вектор признаков в числовой вход классификатора.
func (p *Preprocessor) Transform(v features.Vector) ([]float64, error) {
	if want := len(p.NumericIndex) + len(p.CategoricalIndex); len(v) != want {
		return nil, fmt.Errorf("%w: ожидалось %d колонок, получено %d", ErrShape, want, len(v))
	}

	numeric := make([]float64, len(p.NumericIndex))
	for j, idx := range p.NumericIndex {
		numeric[j] = v[idx].Number
	}
	categorical := make([]string, len(p.CategoricalIndex))
	for j, idx := range p.CategoricalIndex {
		categorical[j] = v[idx].Category
	}

	scaled, err := p.Scaler.Transform(numeric)
	if err != nil {
		return nil, err
	}
	encoded, err := p.Encoder.Transform(categorical)
	if err != nil {
		return nil, err
	}
	return append(scaled, encoded...), nil
}
