package ml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ForestParams гиперпараметры случайного леса.
type ForestParams struct {
	Trees           int   `yaml:"trees" json:"trees"`
	MaxDepth        int   `yaml:"max_depth" json:"max_depth"`
	MinSamplesSplit int   `yaml:"min_samples_split" json:"min_samples_split"`
	Seed            int64 `yaml:"seed" json:"seed"`
	Bootstrap       bool  `yaml:"bootstrap" json:"bootstrap"`
	Workers         int   `yaml:"workers" json:"-"`
}

// DefaultForestParams 100 деревьев, без ограничения глубины, seed 42.
func DefaultForestParams() ForestParams {
	return ForestParams{
		Trees:           100,
		MinSamplesSplit: 2,
		Seed:            42,
		Bootstrap:       true,
	}
}

// Validate проверяет допустимость параметров.
func (p ForestParams) Validate() error {
	if p.Trees <= 0 {
		return fmt.Errorf("%w: trees должно быть > 0", ErrInvalidParams)
	}
	if p.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth не может быть отрицательным", ErrInvalidParams)
	}
	if p.MinSamplesSplit < 2 {
		return fmt.Errorf("%w: min_samples_split должно быть >= 2", ErrInvalidParams)
	}
	return nil
}

// LoadForestParams читает YAML поверх значений по умолчанию.
// Отсутствующие в файле ключи сохраняют значения по умолчанию.
func LoadForestParams(path string) (ForestParams, error) {
	params := DefaultForestParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("ml: не удалось прочитать параметры обучения %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("ml: не удалось разобрать параметры обучения %s: %w", path, err)
	}
	return params, params.Validate()
}
