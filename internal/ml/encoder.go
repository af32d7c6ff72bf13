package ml

import (
	"fmt"
	"sort"
)

// OneHotEncoder кодирует категориальные колонки бинарными индикаторами.
// Категории каждой колонки отсортированы; неизвестная категория даёт нулевой блок.
type OneHotEncoder struct {
	Categories [][]string `json:"categories"`
}

// FitOneHotEncoder собирает список категорий по колонкам.
func FitOneHotEncoder(columns [][]string) *OneHotEncoder {
	e := &OneHotEncoder{Categories: make([][]string, len(columns))}
	for i, col := range columns {
		seen := make(map[string]struct{}, len(col))
		cats := make([]string, 0)
		for _, v := range col {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			cats = append(cats, v)
		}
		sort.Strings(cats)
		e.Categories[i] = cats
	}
	return e
}

// Width количество выходных колонок.
func (e *OneHotEncoder) Width() int {
	n := 0
	for _, cats := range e.Categories {
		n += len(cats)
	}
	return n
}

// Transform кодирует одну строку.
func (e *OneHotEncoder) Transform(values []string) ([]float64, error) {
	if len(values) != len(e.Categories) {
		return nil, fmt.Errorf("%w: encoder ожидает %d колонок, получено %d", ErrShape, len(e.Categories), len(values))
	}
	out := make([]float64, 0, e.Width())
	for i, v := range values {
		block := make([]float64, len(e.Categories[i]))
		if j := sort.SearchStrings(e.Categories[i], v); j < len(block) && e.Categories[i][j] == v {
			block[j] = 1
		}
		out = append(out, block...)
	}
	return out, nil
}
