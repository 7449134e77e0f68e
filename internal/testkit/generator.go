// Package testkit generates deterministic synthetic datasets for tests.
package testkit

import (
	"fmt"
	"math/rand"

	"motiflab/adapters/memory"
	"motiflab/domain/region"
)

// TrackConfig configures the synthetic region track generator
type TrackConfig struct {
	Sequences          int      `json:"sequences"`
	Length             int      `json:"length"`
	RegionsPerSequence int      `json:"regions_per_sequence"`
	MaxRegionLength    int      `json:"max_region_length"`
	Types              []string `json:"types"`
	Seed               int64    `json:"seed"`
}

// DefaultTrackConfig returns a small configuration that still spans several windows
func DefaultTrackConfig() TrackConfig {
	return TrackConfig{
		Sequences:          20,
		Length:             25000,
		RegionsPerSequence: 40,
		MaxRegionLength:    300,
		Types:              []string{"CTCF", "NFKB", "SP1"},
		Seed:               42,
	}
}

// TrackGenerator produces sequences and region tracks from a seeded source
type TrackGenerator struct {
	config TrackConfig
	rng    *rand.Rand
}

// NewTrackGenerator creates a generator; the same config always yields the same data
func NewTrackGenerator(config TrackConfig) *TrackGenerator {
	return &TrackGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Sequences returns seq_0001 .. seq_N, all of the configured length
func (g *TrackGenerator) Sequences() []region.Sequence {
	seqs := make([]region.Sequence, g.config.Sequences)
	for i := range seqs {
		seqs[i] = region.Sequence{Name: fmt.Sprintf("seq_%04d", i+1), Length: g.config.Length}
	}
	return seqs
}

// Track draws random regions on every sequence. Regions may overlap each other and
// may run past the sequence end.
func (g *TrackGenerator) Track(name string, sequences []region.Sequence) *memory.RegionDataset {
	regions := make(map[string][]region.Region, len(sequences))
	for _, seq := range sequences {
		list := make([]region.Region, 0, g.config.RegionsPerSequence)
		for i := 0; i < g.config.RegionsPerSequence; i++ {
			start := g.rng.Intn(max(seq.Length, 1))
			length := 1 + g.rng.Intn(max(g.config.MaxRegionLength, 1))
			list = append(list, region.Region{
				Start:  start,
				End:    start + length - 1,
				Type:   g.regionType(),
				Score:  g.rng.Float64() * 10,
				Strand: g.strand(),
			})
		}
		regions[seq.Name] = list
	}
	return memory.NewRegionDataset(name, regions)
}

// Jitter copies a track, shifting each region by up to shift positions in either direction
// and dropping roughly one region in dropEvery (0 keeps all).
func (g *TrackGenerator) Jitter(name string, source *memory.RegionDataset, sequences []region.Sequence, shift, dropEvery int) *memory.RegionDataset {
	regions := make(map[string][]region.Region, len(sequences))
	for _, seq := range sequences {
		original, _ := source.Regions(seq.Name)
		list := make([]region.Region, 0, len(original))
		for _, r := range original {
			if dropEvery > 0 && g.rng.Intn(dropEvery) == 0 {
				continue
			}
			delta := 0
			if shift > 0 {
				delta = g.rng.Intn(2*shift+1) - shift
			}
			r.Start += delta
			r.End += delta
			list = append(list, r)
		}
		regions[seq.Name] = list
	}
	return memory.NewRegionDataset(name, regions)
}

func (g *TrackGenerator) regionType() string {
	if len(g.config.Types) == 0 {
		return "region"
	}
	return g.config.Types[g.rng.Intn(len(g.config.Types))]
}

func (g *TrackGenerator) strand() int {
	if g.rng.Intn(2) == 0 {
		return region.StrandReverse
	}
	return region.StrandDirect
}

// NoisyLine returns n points on y = slope*x + intercept with uniform noise in
// [-noise, noise]. X runs 0..n-1.
func NoisyLine(n int, slope, intercept, noise float64, seed int64) (x, y []float64) {
	rng := rand.New(rand.NewSource(seed))
	x = make([]float64, n)
	y = make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		y[i] = slope*x[i] + intercept + (rng.Float64()*2-1)*noise
	}
	return x, y
}

// Occupancy is the brute-force per-position coverage of regions on a sequence of the
// given length. Tests compare windowed results against it.
func Occupancy(regions []region.Region, length int) []bool {
	covered := make([]bool, length)
	for _, r := range regions {
		for p := max(r.Start, 0); p <= r.End && p < length; p++ {
			covered[p] = true
		}
	}
	return covered
}
