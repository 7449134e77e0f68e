package testkit

import (
	"motiflab/adapters/memory"
	"motiflab/domain/analysis"
	"motiflab/domain/region"
)

// Dataset names used by SyntheticBundle
const (
	BundlePrediction = "prediction"
	BundleAnswer     = "answer"
	BundleExpression = "expression"
	BundleTypes      = "types"
)

// SyntheticBundle builds a bundle every analysis kind can run against: a prediction
// track, an answer track jittered from it, a per-sequence expression map loosely
// following the summed CTCF-like scores, and the collection of region types.
func SyntheticBundle(config TrackConfig) *memory.Bundle {
	g := NewTrackGenerator(config)
	seqs := g.Sequences()
	prediction := g.Track(BundlePrediction, seqs)
	answer := g.Jitter(BundleAnswer, prediction, seqs, 25, 5)

	expression := make(map[string]float64, len(seqs))
	var firstType string
	if len(config.Types) > 0 {
		firstType = config.Types[0]
	}
	for _, seq := range seqs {
		regions, _ := prediction.Regions(seq.Name)
		total := 0.0
		for _, r := range regions {
			if r.Type == firstType {
				total += r.Score
			}
		}
		expression[seq.Name] = 0.5*total + g.rng.NormFloat64()
	}

	types := config.Types
	if len(types) == 0 {
		types = []string{"region"}
	}

	return &memory.Bundle{
		Sequences: seqs,
		NumericMaps: map[string]memory.NumericMapSpec{
			BundleExpression: {MemberType: string(analysis.MemberSequence), Values: expression},
		},
		Collections: map[string]memory.CollectionSpec{
			BundleTypes: {MemberType: string(analysis.MemberMotif), Members: append([]string(nil), types...)},
		},
		RegionDatasets: map[string]map[string][]region.Region{
			BundlePrediction: regionMap(prediction),
			BundleAnswer:     regionMap(answer),
		},
	}
}

func regionMap(d *memory.RegionDataset) map[string][]region.Region {
	out := make(map[string][]region.Region)
	for _, seq := range d.Sequences() {
		regions, _ := d.Regions(seq)
		out[seq] = regions
	}
	return out
}
