package ml

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ignatzorin/screening-backend/internal/features"
)

// FormatVersion версия формата артефакта.
const FormatVersion = 1

//go:embed artifact_schema.json
var artifactSchemaJSON string

var artifactSchema = gojsonschema.NewStringLoader(artifactSchemaJSON)

type artifact struct {
	FormatVersion int             `json:"format_version"`
	Schema        features.Schema `json:"schema"`
	Preprocessor  *Preprocessor   `json:"preprocessor"`
	Forest        *RandomForest   `json:"forest"`
	Metadata      Metadata        `json:"metadata"`
}

// Encode сериализует обученный pipeline в JSON артефакт.
func Encode(p *Pipeline) ([]byte, error) {
	if p == nil || p.Preprocessor == nil || p.Forest == nil {
		return nil, ErrNotFitted
	}
	data, err := json.Marshal(artifact{
		FormatVersion: FormatVersion,
		Schema:        p.Schema,
		Preprocessor:  p.Preprocessor,
		Forest:        p.Forest,
		Metadata:      p.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("ml: не удалось сериализовать модель: %w", err)
	}
	return data, nil
}

// Decode проверяет артефакт по JSON Schema и восстанавливает pipeline.
func Decode(data []byte) (*Pipeline, error) {
	result, err := gojsonschema.Validate(artifactSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidArtifact, strings.Join(msgs, "; "))
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if err := a.check(); err != nil {
		return nil, err
	}

	return &Pipeline{
		Schema:       a.Schema,
		Preprocessor: a.Preprocessor,
		Forest:       a.Forest,
		Metadata:     a.Metadata,
	}, nil
}

// check сверяет размеры частей артефакта между собой.
func (a *artifact) check() error {
	if err := a.Schema.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	p := a.Preprocessor
	seen := make(map[int]struct{}, len(a.Schema.Fields))
	for _, idx := range p.NumericIndex {
		if idx >= len(a.Schema.Fields) || a.Schema.Fields[idx].Kind != features.KindNumeric {
			return fmt.Errorf("%w: числовой индекс %d не соответствует схеме", ErrInvalidArtifact, idx)
		}
		if _, dup := seen[idx]; dup {
			return fmt.Errorf("%w: индекс %d повторяется", ErrInvalidArtifact, idx)
		}
		seen[idx] = struct{}{}
	}
	for _, idx := range p.CategoricalIndex {
		if idx >= len(a.Schema.Fields) || a.Schema.Fields[idx].Kind != features.KindCategorical {
			return fmt.Errorf("%w: категориальный индекс %d не соответствует схеме", ErrInvalidArtifact, idx)
		}
		if _, dup := seen[idx]; dup {
			return fmt.Errorf("%w: индекс %d повторяется", ErrInvalidArtifact, idx)
		}
		seen[idx] = struct{}{}
	}
	if len(p.NumericIndex)+len(p.CategoricalIndex) != len(a.Schema.Fields) {
		return fmt.Errorf("%w: препроцессор покрывает не все колонки схемы", ErrInvalidArtifact)
	}
	if len(p.Scaler.Mean) != len(p.NumericIndex) || len(p.Scaler.Scale) != len(p.NumericIndex) {
		return fmt.Errorf("%w: размер scaler не совпадает с числом числовых колонок", ErrInvalidArtifact)
	}
	for _, s := range p.Scaler.Scale {
		if s == 0 {
			return fmt.Errorf("%w: нулевой масштаб в scaler", ErrInvalidArtifact)
		}
	}
	if len(p.Encoder.Categories) != len(p.CategoricalIndex) {
		return fmt.Errorf("%w: размер encoder не совпадает с числом категориальных колонок", ErrInvalidArtifact)
	}
	// Transform ищет категорию бинарным поиском.
	for i, cats := range p.Encoder.Categories {
		if !sort.StringsAreSorted(cats) {
			return fmt.Errorf("%w: категории колонки %d не отсортированы", ErrInvalidArtifact, i)
		}
	}
	if p.Width() != a.Forest.Width {
		return fmt.Errorf("%w: препроцессор выдаёт %d колонок, лес ожидает %d", ErrInvalidArtifact, p.Width(), a.Forest.Width)
	}
	for i, t := range a.Forest.Trees {
		if t == nil || !t.valid(a.Forest.Width) {
			return fmt.Errorf("%w: дерево %d повреждено", ErrInvalidArtifact, i)
		}
	}
	return nil
}
