package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaByName(t *testing.T) {
	full, err := SchemaByName(SchemaFull)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"edad", "nota_media", "nivel_ingles",
		"Profesionalidad", "Dominio", "Resiliencia", "HabilidadesSociales",
		"Liderazgo", "Colaboracion", "Compromiso", "Iniciativa",
	}, full.Names())
	assert.True(t, full.UsesProfile())

	comp, err := SchemaByName(SchemaCompetencies)
	require.NoError(t, err)
	assert.Len(t, comp.Fields, 8)
	assert.False(t, comp.UsesProfile())

	_, err = SchemaByName("unknown")
	assert.ErrorIs(t, err, ErrUnknownSchema)
}

func TestSchema_Validate(t *testing.T) {
	assert.NoError(t, FullSchema().Validate())

	assert.NoError(t, CompetenciesSchema().Validate())

	dup := Schema{Name: "dup", Fields: []Field{{Name: "Dominio", Kind: KindNumeric}, {Name: "Dominio", Kind: KindNumeric}}}
	assert.ErrorIs(t, dup.Validate(), ErrInvalidSchema)

	badKind := Schema{Name: "bad", Fields: []Field{{Name: "Dominio", Kind: "text"}}}
	assert.ErrorIs(t, badKind.Validate(), ErrInvalidSchema)

	wrongKind := Schema{Name: "bad", Fields: []Field{{Name: FieldEnglishLevel, Kind: KindNumeric}}}
	assert.ErrorIs(t, wrongKind.Validate(), ErrInvalidSchema)

	assert.ErrorIs(t, Schema{}.Validate(), ErrInvalidSchema)
}

func TestSchema_EqualIsOrderSensitive(t *testing.T) {
	a := CompetenciesSchema()
	b := CompetenciesSchema()
	assert.True(t, a.Equal(b))

	b.Fields[0], b.Fields[1] = b.Fields[1], b.Fields[0]
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(FullSchema()))
}

func TestSchema_ValidateRejectsUnknownColumns(t *testing.T) {
	schema := CompetenciesSchema()
	schema.Fields[3].Name = "Typo"

	err := schema.Validate()
	assert.ErrorIs(t, err, ErrInvalidSchema)
	assert.Contains(t, err.Error(), "Typo")
}
