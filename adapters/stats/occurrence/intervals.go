package occurrence

import (
	"fmt"

	"motiflab/domain/region"

	"github.com/biogo/store/interval"
)

// intInterval is a half-open [Start, End) interval stored in the containment tree.
// Regions are inclusive, so End is one past the last covered position.
type intInterval struct {
	Start, End int
	UID        uintptr
}

func halfOpen(r region.Region, uid uintptr) intInterval {
	return intInterval{Start: r.Start, End: r.End + 1, UID: uid}
}

func (i intInterval) Overlap(b interval.IntRange) bool {
	return i.Start < b.End && b.Start < i.End
}

func (i intInterval) ID() uintptr { return i.UID }

func (i intInterval) Range() interval.IntRange {
	return interval.IntRange{Start: i.Start, End: i.End}
}

func (i intInterval) String() string {
	return fmt.Sprintf("[%d, %d) id: %d", i.Start, i.End, i.UID)
}

// containment answers "is this region nested in one of the filter regions" per sequence
type containment struct {
	trees map[string]*interval.IntTree
}

func newContainment() *containment {
	return &containment{trees: make(map[string]*interval.IntTree)}
}

// load indexes the filter regions of one sequence
func (c *containment) load(sequence string, regions []region.Region) error {
	tree := &interval.IntTree{}
	for i, r := range regions {
		if err := r.Validate(sequence); err != nil {
			return err
		}
		if err := tree.Insert(halfOpen(r, uintptr(i)), false); err != nil {
			return err
		}
	}
	c.trees[sequence] = tree
	return nil
}

// contains reports whether r lies fully inside some indexed region of sequence
func (c *containment) contains(sequence string, r region.Region) bool {
	tree, ok := c.trees[sequence]
	if !ok || tree.Len() == 0 {
		return false
	}
	q := halfOpen(r, 0)
	for _, hit := range tree.Get(q) {
		iv := hit.(intInterval)
		if iv.Start <= q.Start && q.End <= iv.End {
			return true
		}
	}
	return false
}
