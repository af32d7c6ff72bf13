package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardScaler_PopulationStd(t *testing.T) {
	s := FitStandardScaler([][]float64{{2, 4, 4, 4, 5, 5, 7, 9}})

	assert.InDelta(t, 5.0, s.Mean[0], 1e-9)
	assert.InDelta(t, 2.0, s.Scale[0], 1e-9)

	out, err := s.Transform([]float64{9})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, out[0], 1e-9)
}

func TestStandardScaler_ConstantColumnOnlyCentered(t *testing.T) {
	s := FitStandardScaler([][]float64{{3, 3, 3}})

	assert.Equal(t, 1.0, s.Scale[0])
	out, err := s.Transform([]float64{5})
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, out)
}

func TestStandardScaler_ShapeMismatch(t *testing.T) {
	s := FitStandardScaler([][]float64{{1, 2}, {3, 4}})

	_, err := s.Transform([]float64{1})
	assert.ErrorIs(t, err, ErrShape)
}

func TestOneHotEncoder_SortedCategories(t *testing.T) {
	e := FitOneHotEncoder([][]string{{"C1", "A2", "B2", "A2"}})

	assert.Equal(t, [][]string{{"A2", "B2", "C1"}}, e.Categories)
	assert.Equal(t, 3, e.Width())

	out, err := e.Transform([]string{"B2"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, out)
}

func TestOneHotEncoder_UnknownCategoryIsZeroBlock(t *testing.T) {
	e := FitOneHotEncoder([][]string{{"A2", "B2"}})

	out, err := e.Transform([]string{"C2"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, out)
}
