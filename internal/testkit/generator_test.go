package testkit

import (
	"testing"

	"motiflab/domain/region"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackGenerator_Deterministic(t *testing.T) {
	config := DefaultTrackConfig()
	config.Sequences = 3

	first := NewTrackGenerator(config)
	second := NewTrackGenerator(config)

	seqs := first.Sequences()
	require.Len(t, seqs, 3)
	assert.Equal(t, "seq_0001", seqs[0].Name)

	a := first.Track("a", seqs)
	b := second.Track("b", second.Sequences())
	for _, seq := range seqs {
		ra, err := a.Regions(seq.Name)
		require.NoError(t, err)
		rb, err := b.Regions(seq.Name)
		require.NoError(t, err)
		assert.Equal(t, ra, rb)
		assert.Len(t, ra, config.RegionsPerSequence)
		for _, r := range ra {
			assert.LessOrEqual(t, r.Start, r.End)
			assert.Contains(t, config.Types, r.Type)
		}
	}
}

func TestTrackGenerator_Jitter(t *testing.T) {
	config := DefaultTrackConfig()
	config.Sequences = 2
	g := NewTrackGenerator(config)
	seqs := g.Sequences()
	track := g.Track("pred", seqs)

	same := g.Jitter("copy", track, seqs, 0, 0)
	for _, seq := range seqs {
		want, _ := track.Regions(seq.Name)
		got, _ := same.Regions(seq.Name)
		assert.Equal(t, want, got)
	}

	shifted := g.Jitter("shifted", track, seqs, 5, 4)
	for _, seq := range seqs {
		original, _ := track.Regions(seq.Name)
		moved, _ := shifted.Regions(seq.Name)
		assert.LessOrEqual(t, len(moved), len(original))
		for _, r := range moved {
			assert.LessOrEqual(t, r.Length(), config.MaxRegionLength)
		}
	}
}

func TestNoisyLine(t *testing.T) {
	x, y := NoisyLine(50, 2, 1, 0.5, 7)
	require.Len(t, x, 50)
	for i := range x {
		assert.InDelta(t, 2*x[i]+1, y[i], 0.5)
	}

	_, exact := NoisyLine(4, 2, 1, 0, 7)
	assert.Equal(t, []float64{1, 3, 5, 7}, exact)
}

func TestOccupancy(t *testing.T) {
	assert.Equal(t, []bool{false, false, false}, Occupancy(nil, 3))

	covered := Occupancy([]region.Region{{Start: -2, End: 0}, {Start: 3, End: 9}}, 5)
	assert.Equal(t, []bool{true, false, false, true, true}, covered)
}

func TestSyntheticBundle(t *testing.T) {
	config := DefaultTrackConfig()
	config.Sequences = 4
	config.Length = 2000

	b := SyntheticBundle(config)
	require.NoError(t, b.Validate())
	assert.Len(t, b.Sequences, 4)

	expression, err := b.NumericMap(BundleExpression)
	require.NoError(t, err)
	assert.Len(t, expression.Keys(), 4)

	types, err := b.Collection(BundleTypes)
	require.NoError(t, err)
	assert.Equal(t, config.Types, types.Members())

	prediction, err := b.RegionDataset(BundlePrediction)
	require.NoError(t, err)
	answer, err := b.RegionDataset(BundleAnswer)
	require.NoError(t, err)
	assert.Equal(t, prediction.Sequences(), answer.Sequences())

	assert.Equal(t, b, SyntheticBundle(config), "same config, same bundle")
}
