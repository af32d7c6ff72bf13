package ml

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RandomForest ансамбль деревьев на бутстреп-подвыборках.
type RandomForest struct {
	Width int             `json:"width"`
	Trees []*DecisionTree `json:"trees"`
}

// FitRandomForest обучает лес. Каждое дерево получает собственный генератор с
// зерном Seed+i, поэтому результат не зависит от порядка выполнения горутин.
func FitRandomForest(ctx context.Context, x [][]float64, y []int, params ForestParams) (*RandomForest, error) {
	if len(x) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d строк и %d меток", ErrShape, len(x), len(y))
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	width := len(x[0])
	for i, row := range x {
		if len(row) != width {
			return nil, fmt.Errorf("%w: строка %d содержит %d колонок вместо %d", ErrShape, i, len(row), width)
		}
	}
	for i, label := range y {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("%w: метка %d в строке %d", ErrInvalidLabel, label, i)
		}
	}

	maxFeatures := int(math.Sqrt(float64(width)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}
	tp := treeParams{
		maxDepth:        params.MaxDepth,
		minSamplesSplit: params.MinSamplesSplit,
		maxFeatures:     maxFeatures,
	}

	workers := params.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	forest := &RandomForest{Width: width, Trees: make([]*DecisionTree, params.Trees)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range forest.Trees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(params.Seed + int64(i)))
			forest.Trees[i] = fitTree(x, y, sampleRows(len(x), params.Bootstrap, rng), tp, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ml: обучение леса прервано: %w", err)
	}

	return forest, nil
}

func sampleRows(n int, bootstrap bool, rng *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		if bootstrap {
			idx[i] = rng.Intn(n)
		} else {
			idx[i] = i
		}
	}
	return idx
}

// PredictProba средняя вероятность положительного класса по деревьям.
func (f *RandomForest) PredictProba(x []float64) (float64, error) {
	if len(x) != f.Width {
		return 0, fmt.Errorf("%w: лес ожидает %d колонок, получено %d", ErrShape, f.Width, len(x))
	}
	if len(f.Trees) == 0 {
		return 0, ErrNotFitted
	}
	sum := 0.0
	for _, t := range f.Trees {
		sum += t.predictProba(x)
	}
	return sum / float64(len(f.Trees)), nil
}

// Predict класс 1, если вероятность строго больше 0.5. При равенстве голосов выбирается 0.
func (f *RandomForest) Predict(x []float64) (int, error) {
	p, err := f.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return decide(p), nil
}

func decide(proba float64) int {
	if proba > 0.5 {
		return 1
	}
	return 0
}
