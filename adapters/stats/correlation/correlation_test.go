package correlation

import (
	"math"
	"testing"

	"motiflab/adapters/memory"
	"motiflab/domain/analysis"
	"motiflab/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPearson_SelfAndSymmetry(t *testing.T) {
	x := []float64{1.5, 2.1, 0.3, 8.8, 4.4, 4.4}
	y := []float64{3, 1, 4, 1, 5, 9}

	self, err := Pearson(x, x)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, self, 1e-12)

	xy, err := Pearson(x, y)
	require.NoError(t, err)
	yx, err := Pearson(y, x)
	require.NoError(t, err)
	assert.InDelta(t, xy, yx, 1e-15)

	sxy, err := Spearman(x, y)
	require.NoError(t, err)
	syx, err := Spearman(y, x)
	require.NoError(t, err)
	assert.InDelta(t, sxy, syx, 1e-15)
}

func TestSpearman_MonotoneIsOne(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{1, 8, 27, 64, 125}

	rho, err := Spearman(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rho, 1e-12)

	r, err := Pearson(x, y)
	require.NoError(t, err)
	assert.Less(t, r, 1.0)
}

func TestRanks_AveragesTies(t *testing.T) {
	assert.Equal(t, []float64{1, 2.5, 2.5, 4}, Ranks([]float64{10, 20, 20, 30}))
	assert.Equal(t, []float64{3, 1, 2}, Ranks([]float64{9, -1, 0}))
	assert.Empty(t, Ranks(nil))
}

func TestPearson_Preconditions(t *testing.T) {
	_, err := Pearson([]float64{1}, []float64{2})
	assert.ErrorIs(t, err, core.ErrInsufficientData)
	assert.Contains(t, err.Error(), "at least 2 data points required")

	_, err = Pearson([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestPearson_ConstantSampleIsNaN(t *testing.T) {
	r, err := Pearson([]float64{2, 2, 2}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(r))
}

func TestCorrelate(t *testing.T) {
	x := memory.NewNumericMap("x", analysis.MemberSequence, map[string]float64{
		"a": 1, "b": 2, "c": 3, "d": math.NaN(), "e": 5,
	})
	y := memory.NewNumericMap("y", analysis.MemberSequence, map[string]float64{
		"a": 2, "b": 4, "c": 6, "d": 8,
	})

	result, err := Correlate(x, y, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.N, "d is NaN in x and e is missing in y")
	assert.InDelta(t, 1.0, result.Pearson.Value(), 1e-12)
	assert.InDelta(t, 1.0, result.Spearman.Value(), 1e-12)
	assert.InDelta(t, 0.0, result.PearsonPValue.Value(), 1e-6)

	filter := memory.NewCollection("ab", analysis.MemberSequence, "a", "b")
	result, err = Correlate(x, y, filter)
	require.NoError(t, err)
	assert.Equal(t, 2, result.N)
	assert.True(t, result.PearsonPValue.IsNaN(), "no degrees of freedom left")

	single := memory.NewCollection("a", analysis.MemberSequence, "a", "zzz")
	_, err = Correlate(x, y, single)
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestCorrelate_TypeMismatch(t *testing.T) {
	x := memory.NewNumericMap("x", analysis.MemberSequence, map[string]float64{"a": 1})
	y := memory.NewNumericMap("y", analysis.MemberMotif, map[string]float64{"a": 1})
	_, err := Correlate(x, y, nil)
	assert.ErrorIs(t, err, core.ErrIncompatibleTypes)

	motifs := memory.NewCollection("m", analysis.MemberMotif, "a")
	_, err = Correlate(x, x, motifs)
	assert.ErrorIs(t, err, core.ErrIncompatibleTypes)
}
