package agreement

import (
	"sort"

	"motiflab/domain/core"
	"motiflab/domain/region"
	domainStats "motiflab/domain/stats"
)

// occupancy flattens one sequence's regions window by window. Regions are visited in
// start order and only those touching the current window are kept active.
type occupancy struct {
	regions []region.Region
	next    int
	active  []region.Region
	buf     []bool
}

// newOccupancy validates regions and clips them to [0, length)
func newOccupancy(sequence string, regions []region.Region, length, window int) (*occupancy, error) {
	clipped := make([]region.Region, 0, len(regions))
	for _, r := range regions {
		if r.Start > r.End {
			return nil, core.NewInvalidRegionError(sequence, r.Start, r.End)
		}
		r.Start = max(r.Start, 0)
		r.End = min(r.End, length-1)
		if r.Start > r.End {
			continue
		}
		clipped = append(clipped, r)
	}
	sort.Slice(clipped, func(i, j int) bool {
		return clipped[i].Start < clipped[j].Start
	})
	return &occupancy{regions: clipped, buf: make([]bool, min(window, max(length, 0)))}, nil
}

// fill marks the covered positions of [from, to) and returns the window buffer
func (o *occupancy) fill(from, to int) []bool {
	buf := o.buf[:to-from]
	clear(buf)

	kept := o.active[:0]
	for _, r := range o.active {
		if r.End >= from {
			kept = append(kept, r)
		}
	}
	o.active = kept
	for o.next < len(o.regions) && o.regions[o.next].Start < to {
		o.active = append(o.active, o.regions[o.next])
		o.next++
	}

	for _, r := range o.active {
		lo, hi := max(r.Start, from), min(r.End, to-1)
		for p := lo; p <= hi; p++ {
			buf[p-from] = true
		}
	}
	return buf
}

// classify tallies one window position by position
func classify(predicted, answer []bool) domainStats.ConfusionCounts {
	var c domainStats.ConfusionCounts
	for i := range predicted {
		switch {
		case predicted[i] && answer[i]:
			c.TP++
		case predicted[i]:
			c.FP++
		case answer[i]:
			c.FN++
		default:
			c.TN++
		}
	}
	return c
}
