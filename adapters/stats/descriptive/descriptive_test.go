package descriptive

import (
	"math"
	"testing"

	"motiflab/adapters/memory"
	"motiflab/domain/analysis"
	"motiflab/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_KnownValues(t *testing.T) {
	stat, err := Compute([]float64{4, 1, 3, 2}, HistogramOptions{BinWidth: 1})
	require.NoError(t, err)

	assert.Equal(t, 4, stat.Count)
	assert.Equal(t, 1.0, stat.Min.Value())
	assert.Equal(t, 4.0, stat.Max.Value())
	assert.Equal(t, 2.5, stat.Average.Value())
	assert.Equal(t, 2.5, stat.Median.Value())
	assert.InDelta(t, 1.75, stat.FirstQuartile.Value(), 1e-12)
	assert.InDelta(t, 3.25, stat.ThirdQuartile.Value(), 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), stat.StandardDeviation.Value(), 1e-12)
	assert.Equal(t, []int{1, 1, 1, 1}, stat.Bins)
	assert.Equal(t, 1.0, stat.BinStart.Value())
}

func TestCompute_OrderingHolds(t *testing.T) {
	samples := [][]float64{
		{7},
		{3, 3, 3},
		{-10, 0.5, 2, 2, 99},
		{1e9, -1e9, 0, 1, 2, 3, 4, 5},
	}
	for _, sample := range samples {
		stat, err := Compute(sample, HistogramOptions{BinWidth: 10})
		require.NoError(t, err)
		assert.LessOrEqual(t, stat.Min.Value(), stat.FirstQuartile.Value())
		assert.LessOrEqual(t, stat.FirstQuartile.Value(), stat.Median.Value())
		assert.LessOrEqual(t, stat.Median.Value(), stat.ThirdQuartile.Value())
		assert.LessOrEqual(t, stat.ThirdQuartile.Value(), stat.Max.Value())

		total := 0
		for _, b := range stat.Bins {
			total += b
		}
		assert.Equal(t, stat.Count, total, "every value lands in a bin")
	}
}

func TestCompute_SkipsNaNAndInf(t *testing.T) {
	stat, err := Compute([]float64{1, math.NaN(), 3, math.Inf(1)}, HistogramOptions{BinWidth: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, stat.Count)
	assert.Equal(t, 2.0, stat.Average.Value())
}

func TestCompute_Empty(t *testing.T) {
	stat, err := Compute(nil, HistogramOptions{BinWidth: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, stat.Count)
	assert.True(t, stat.Min.IsNaN())
	assert.True(t, stat.Median.IsNaN())
	assert.True(t, stat.StandardDeviation.IsNaN())
	assert.Empty(t, stat.Bins)
}

func TestCompute_InvalidBinWidth(t *testing.T) {
	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Compute([]float64{1, 2}, HistogramOptions{BinWidth: w})
		assert.ErrorIs(t, err, core.ErrInvalidBinWidth)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	}
}

func TestCompute_TooManyBins(t *testing.T) {
	_, err := Compute([]float64{0, 1e9}, HistogramOptions{BinWidth: 1e-3})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestHistogramLayouts(t *testing.T) {
	t.Run("percentage clamps to edge bins", func(t *testing.T) {
		stat, err := Compute([]float64{-5, 50, 150}, HistogramOptions{BinWidth: 50, Layout: LayoutPercentage})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 1, 1}, stat.Bins)
		assert.Equal(t, 0.0, stat.BinStart.Value())
	})

	t.Run("integers aligns to floor of min", func(t *testing.T) {
		stat, err := Compute([]float64{0.5, 2.7}, HistogramOptions{BinWidth: 1, Layout: LayoutIntegers})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 0, 1}, stat.Bins)
		assert.Equal(t, 0.0, stat.BinStart.Value())
	})

	t.Run("extend grows past explicit range", func(t *testing.T) {
		stat, err := Compute([]float64{-1, 5}, HistogramOptions{BinWidth: 1, Range: &Range{Start: 0, End: 2}})
		require.NoError(t, err)
		require.Len(t, stat.Bins, 7)
		assert.Equal(t, 1, stat.Bins[0])
		assert.Equal(t, 1, stat.Bins[6])
		assert.Equal(t, -1.0, stat.BinStart.Value())
	})

	t.Run("extend rejects values far outside the range", func(t *testing.T) {
		_, err := Compute([]float64{0, 1e300}, HistogramOptions{BinWidth: 1, Range: &Range{Start: 0, End: 10}})
		assert.ErrorIs(t, err, core.ErrInvalidInput)

		_, err = Compute([]float64{-1e300, 0}, HistogramOptions{BinWidth: 1, Range: &Range{Start: 0, End: 10}})
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("clamped layouts absorb huge values", func(t *testing.T) {
		stat, err := Compute([]float64{-1e30, 1e30}, HistogramOptions{BinWidth: 50, Layout: LayoutPercentage})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 0, 1}, stat.Bins)
	})

	t.Run("reversed range rejected", func(t *testing.T) {
		_, err := Compute([]float64{1}, HistogramOptions{BinWidth: 1, Range: &Range{Start: 2, End: 1}})
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout(" Percentage ")
	require.NoError(t, err)
	assert.Equal(t, LayoutPercentage, l)

	l, err = ParseLayout("")
	require.NoError(t, err)
	assert.Equal(t, LayoutExtend, l)

	_, err = ParseLayout("log")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestPercentile(t *testing.T) {
	sample := []float64{10, 20, 30, 40, 50}
	assert.Equal(t, 30.0, Percentile(sample, 50))
	assert.Equal(t, 10.0, Percentile(sample, 0))
	assert.Equal(t, 50.0, Percentile(sample, 100))
	assert.InDelta(t, 46.0, Percentile(sample, 90), 1e-12)
	assert.True(t, math.IsNaN(Percentile(sample, 101)))
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, sample, "input left untouched")
}

func TestSummarize(t *testing.T) {
	m := memory.NewNumericMap("expr", analysis.MemberSequence, map[string]float64{"a": 1, "b": 2, "c": 9})

	stat, err := Summarize(m, nil, HistogramOptions{BinWidth: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, stat.Count)
	assert.Equal(t, 4.0, stat.Average.Value())

	subset := memory.NewCollection("ab", analysis.MemberSequence, "a", "b", "missing")
	stat, err = Summarize(m, subset, HistogramOptions{BinWidth: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, stat.Count)
	assert.Equal(t, 1.5, stat.Average.Value())

	motifs := memory.NewCollection("motifs", analysis.MemberMotif, "a")
	_, err = Summarize(m, motifs, HistogramOptions{BinWidth: 1})
	assert.ErrorIs(t, err, core.ErrIncompatibleTypes)
}
