// Package occurrence tallies how often each category of region appears across sequences.
package occurrence

import (
	"motiflab/domain/region"
	domainStats "motiflab/domain/stats"
	"motiflab/ports"
)

// Options narrows what is counted
type Options struct {
	// Within restricts counting to regions fully nested inside a region of this dataset
	// on the same sequence
	Within ports.RegionDataset
	// CountUnknown tallies labels outside the reference categories separately
	CountUnknown bool
}

// Count tallies the regions of track per category over the given sequences. Every
// reference category is present in the result, with zero counts if never seen.
func Count(categories []string, track ports.RegionDataset, sequences []region.Sequence, opts Options) (domainStats.OccurrenceTally, error) {
	tally := domainStats.NewOccurrenceTally(categories)
	tally.SequenceCount = len(sequences)
	if opts.CountUnknown {
		tally.Unknown = make(map[string]domainStats.CategoryCount)
	}

	var filter *containment
	if opts.Within != nil {
		filter = newContainment()
	}

	for _, seq := range sequences {
		regions, err := track.Regions(seq.Name)
		if err != nil {
			return domainStats.OccurrenceTally{}, err
		}
		if filter != nil {
			within, err := opts.Within.Regions(seq.Name)
			if err != nil {
				return domainStats.OccurrenceTally{}, err
			}
			if err := filter.load(seq.Name, within); err != nil {
				return domainStats.OccurrenceTally{}, err
			}
		}

		seen := make(map[string]struct{})
		unknownSeen := make(map[string]struct{})
		for _, r := range regions {
			if err := r.Validate(seq.Name); err != nil {
				return domainStats.OccurrenceTally{}, err
			}
			if filter != nil && !filter.contains(seq.Name, r) {
				continue
			}

			counts, marks := tally.Counts, seen
			if _, known := tally.Counts[r.Type]; !known {
				if !opts.CountUnknown {
					continue
				}
				counts, marks = tally.Unknown, unknownSeen
			}

			c := counts[r.Type]
			c.TotalOccurrences++
			if _, dup := marks[r.Type]; !dup {
				marks[r.Type] = struct{}{}
				c.SequenceSupport++
			}
			counts[r.Type] = c
		}
	}
	return tally, nil
}
