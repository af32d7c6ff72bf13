package ml

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/screening-backend/internal/features"
)

// Metadata сведения об обучении, сохраняются вместе с моделью.
type Metadata struct {
	Version   uuid.UUID    `json:"version"`
	TrainedAt time.Time    `json:"trained_at"`
	Samples   int          `json:"samples"`
	Positives int          `json:"positives"`
	Params    ForestParams `json:"params"`
}

// Pipeline схема признаков + препроцессинг + классификатор.
// После обучения не изменяется и может использоваться из нескольких горутин.
type Pipeline struct {
	Schema       features.Schema
	Preprocessor *Preprocessor
	Forest       *RandomForest
	Metadata     Metadata
}

// Fit обучает препроцессинг и лес на выборке rows/labels.
func Fit(ctx context.Context, schema features.Schema, rows []features.Vector, labels []int, params ForestParams) (*Pipeline, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("%w: %d строк и %d меток", ErrShape, len(rows), len(labels))
	}

	pre, err := FitPreprocessor(schema, rows)
	if err != nil {
		return nil, err
	}

	x := make([][]float64, len(rows))
	for i, row := range rows {
		if x[i], err = pre.Transform(row); err != nil {
			return nil, err
		}
	}

	forest, err := FitRandomForest(ctx, x, labels, params)
	if err != nil {
		return nil, err
	}

	positives := 0
	for _, l := range labels {
		positives += l
	}

	return &Pipeline{
		Schema:       schema,
		Preprocessor: pre,
		Forest:       forest,
		Metadata: Metadata{
			Version:   uuid.New(),
			TrainedAt: time.Now().UTC(),
			Samples:   len(rows),
			Positives: positives,
			Params:    params,
		},
	}, nil
}

// PredictProba вероятность положительного класса для одного вектора.
func (p *Pipeline) PredictProba(v features.Vector) (float64, error) {
	x, err := p.Preprocessor.Transform(v)
	if err != nil {
		return 0, err
	}
	return p.Forest.PredictProba(x)
}

// Predict класс 0 или 1 для одного вектора.
func (p *Pipeline) Predict(v features.Vector) (int, error) {
	label, _, err := p.Classify(v)
	return label, err
}

// Classify класс и вероятность положительного класса за один проход по лесу.
func (p *Pipeline) Classify(v features.Vector) (int, float64, error) {
	proba, err := p.PredictProba(v)
	if err != nil {
		return 0, 0, err
	}
	return decide(proba), proba, nil
}
