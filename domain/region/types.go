// Package region holds the interval model shared by the region-based analyses.
//
// Coordinates are 0-based and inclusive on both ends, relative to the start of the
// owning sequence: a region covering a whole 100 bp sequence is {Start: 0, End: 99}.
package region

import (
	"sort"

	"motiflab/domain/core"
)

// Strand orientations
const (
	StrandNone    = 0
	StrandDirect  = 1
	StrandReverse = -1
)

// Region is one annotated interval on a sequence
type Region struct {
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Type   string  `json:"type,omitempty"`   // Motif or module ID, region class
	Score  float64 `json:"score,omitempty"`  // Match score where the track carries one
	Strand int     `json:"strand,omitempty"` // +1, -1 or 0 for undirected
}

// Length returns the number of positions covered
func (r Region) Length() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether other lies fully inside r
func (r Region) Contains(other Region) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Overlaps reports whether r and other share at least one position
func (r Region) Overlaps(other Region) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// Validate rejects intervals with start after end
func (r Region) Validate(sequence string) error {
	if r.Start > r.End {
		return core.NewInvalidRegionError(sequence, r.Start, r.End)
	}
	return nil
}

// Sequence identifies a sequence and its length in positions
type Sequence struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// SortedByStart returns a copy of regions ordered by start, then end
func SortedByStart(regions []Region) []Region {
	sorted := make([]Region, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})
	return sorted
}

// Names returns the sequence names in order
func Names(sequences []Sequence) []string {
	names := make([]string, len(sequences))
	for i, s := range sequences {
		names[i] = s.Name
	}
	return names
}
