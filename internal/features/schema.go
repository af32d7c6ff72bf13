package features

import (
	"errors"
	"fmt"

	"github.com/ignatzorin/screening-backend/internal/models"
)

// Kind тип колонки признака.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// Базовые атрибуты кандидата.
const (
	FieldAge          = "edad"
	FieldAverageGrade = "nota_media"
	FieldEnglishLevel = "nivel_ingles"
)

// Имена встроенных схем.
const (
	SchemaFull         = "full"
	SchemaCompetencies = "competencies"
)

var (
	ErrUnknownSchema = errors.New("features: неизвестная схема признаков")
	ErrInvalidSchema = errors.New("features: некорректная схема признаков")
)

// Field одна колонка вектора признаков.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Schema упорядоченный список колонок. Один и тот же дескриптор используется
// при обучении и при предсказании, поэтому порядок колонок всегда совпадает.
type Schema struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// FullSchema возраст, средний балл, уровень английского и восемь компетенций.
func FullSchema() Schema {
	fields := []Field{
		{Name: FieldAge, Kind: KindNumeric},
		{Name: FieldAverageGrade, Kind: KindNumeric},
		{Name: FieldEnglishLevel, Kind: KindCategorical},
	}
	return Schema{Name: SchemaFull, Fields: append(fields, competencyFields()...)}
}

// CompetenciesSchema только восемь компетенций.
func CompetenciesSchema() Schema {
	return Schema{Name: SchemaCompetencies, Fields: competencyFields()}
}

// SchemaByName возвращает встроенную схему по имени.
func SchemaByName(name string) (Schema, error) {
	switch name {
	case SchemaFull, "":
		return FullSchema(), nil
	case SchemaCompetencies:
		return CompetenciesSchema(), nil
	default:
		return Schema{}, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
}

func competencyFields() []Field {
	fields := make([]Field, 0, len(models.Competencies))
	for _, name := range models.Competencies {
		fields = append(fields, Field{Name: name, Kind: KindNumeric})
	}
	return fields
}

// Validate проверяет, что колонки уникальны и каждая является атрибутом
// кандидата или одной из компетенций с ожидаемым типом.
func (s Schema) Validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: нет колонок", ErrInvalidSchema)
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: пустое имя колонки %d", ErrInvalidSchema, i)
		}
		want, known := fieldKind(f.Name)
		if !known {
			return fmt.Errorf("%w: неизвестная колонка %s", ErrInvalidSchema, f.Name)
		}
		if f.Kind != want {
			return fmt.Errorf("%w: колонка %s имеет тип %q, ожидался %q", ErrInvalidSchema, f.Name, f.Kind, want)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: колонка %s повторяется", ErrInvalidSchema, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// Equal сравнивает схемы по составу и порядку колонок.
func (s Schema) Equal(other Schema) bool {
	if len(s.Fields) != len(other.Fields) {
		return false
	}
	for i := range s.Fields {
		if s.Fields[i] != other.Fields[i] {
			return false
		}
	}
	return true
}

// Names возвращает имена колонок по порядку.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// UsesProfile сообщает, нужны ли атрибуты кандидата для этой схемы.
func (s Schema) UsesProfile() bool {
	for _, f := range s.Fields {
		if isProfileField(f.Name) {
			return true
		}
	}
	return false
}

func isProfileField(name string) bool {
	return name == FieldAge || name == FieldAverageGrade || name == FieldEnglishLevel
}

// fieldKind тип известной колонки; false для имён вне атрибутов и компетенций.
func fieldKind(name string) (Kind, bool) {
	switch name {
	case FieldAge, FieldAverageGrade:
		return KindNumeric, true
	case FieldEnglishLevel:
		return KindCategorical, true
	}
	for _, c := range models.Competencies {
		if c == name {
			return KindNumeric, true
		}
	}
	return "", false
}
