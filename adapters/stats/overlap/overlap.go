// Package overlap tests whether two collections share more (or fewer) members than
// chance predicts, using the hypergeometric distribution.
package overlap

import (
	"fmt"
	"math"

	"motiflab/domain/core"
	domainStats "motiflab/domain/stats"
	"motiflab/ports"

	mstats "github.com/aclements/go-moremath/stats"
)

// DefaultAlpha is the significance level used when none is configured
const DefaultAlpha = 0.05

// Engine computes set-overlap significance at a fixed alpha
type Engine struct {
	alpha float64
}

// NewEngine creates an engine; alpha outside (0, 1) falls back to DefaultAlpha
func NewEngine(alpha float64) *Engine {
	if !(alpha > 0 && alpha < 1) {
		alpha = DefaultAlpha
	}
	return &Engine{alpha: alpha}
}

// Alpha returns the significance level used for the representation flags
func (e *Engine) Alpha() float64 {
	return e.alpha
}

// Compare counts A and B inside the universe and tests their overlap.
// All three collections must hold the same member type.
func (e *Engine) Compare(a, b, universe ports.Collection) (domainStats.OverlapResult, error) {
	if err := sameType(a, b, universe); err != nil {
		return domainStats.OverlapResult{}, err
	}

	inUniverse := dedupe(restrict(a.Members(), universe))
	sizeB := len(dedupe(restrict(b.Members(), universe)))
	intersection := 0
	for _, m := range inUniverse {
		if b.Contains(m) {
			intersection++
		}
	}

	return e.Table(len(inUniverse), sizeB, intersection, len(universe.Members()))
}

// Table tests an already counted overlap
func (e *Engine) Table(sizeA, sizeB, intersection, background int) (domainStats.OverlapResult, error) {
	table, err := domainStats.NewContingencyTable(sizeA, sizeB, intersection, background)
	if err != nil {
		return domainStats.OverlapResult{}, err
	}
	return e.test(table), nil
}

// CompareClusters tests every cluster of the partition against target. The target size
// and background are shared; each cluster is counted on its own. Results are ordered by
// cluster name.
func (e *Engine) CompareClusters(partition ports.Partition, target, universe ports.Collection) ([]domainStats.ClusterOverlap, error) {
	if partition.MemberType() != target.MemberType() {
		return nil, core.NewIncompatibleTypesError(string(partition.MemberType()), string(target.MemberType()))
	}
	if target.MemberType() != universe.MemberType() {
		return nil, core.NewIncompatibleTypesError(string(target.MemberType()), string(universe.MemberType()))
	}

	background := len(universe.Members())
	targetSize := len(dedupe(restrict(target.Members(), universe)))

	clusters := partition.Clusters()
	results := make([]domainStats.ClusterOverlap, 0, len(clusters))
	for _, cluster := range clusters {
		members := dedupe(restrict(partition.ClusterMembers(cluster), universe))
		intersection := 0
		for _, m := range members {
			if target.Contains(m) {
				intersection++
			}
		}

		result, err := e.Table(len(members), targetSize, intersection, background)
		if err != nil {
			return nil, fmt.Errorf("cluster %s: %w", cluster, err)
		}
		results = append(results, domainStats.ClusterOverlap{Cluster: cluster, OverlapResult: result})
	}

	domainStats.SortClustersByName(results)
	return results, nil
}

// PValues returns P(X >= k) and P(X <= k) for the hypergeometric variable X counting
// members of B drawn from A. Both tails include k. An empty background yields NaN.
func PValues(table domainStats.ContingencyTable) (atLeast, atMost float64) {
	if table.Background == 0 {
		return math.NaN(), math.NaN()
	}
	dist := mstats.HypergeometicDist{
		N:     table.Background,
		K:     table.SizeA,
		Draws: table.SizeB,
	}
	lo, hi := dist.Bounds()
	k := float64(table.Intersection)
	// A tail covering the whole support is exactly one
	atLeast, atMost = 1, 1
	// Each tail is summed from its far end so small terms are not lost
	// against a complement near one.
	if k > lo {
		atLeast = 0
		for i := hi; i >= k; i-- {
			atLeast += dist.PMF(i)
		}
	}
	if k < hi {
		atMost = 0
		for i := lo; i <= k; i++ {
			atMost += dist.PMF(i)
		}
	}
	return clamp01(atLeast), clamp01(atMost)
}

func (e *Engine) test(table domainStats.ContingencyTable) domainStats.OverlapResult {
	atLeast, atMost := PValues(table)

	expected := math.NaN()
	if table.Background > 0 {
		expected = float64(table.SizeA) * float64(table.SizeB) / float64(table.Background)
	}

	k := float64(table.Intersection)
	return domainStats.OverlapResult{
		Table:            table,
		Expected:         domainStats.Float(expected),
		PValueAtLeast:    domainStats.Float(atLeast),
		PValueAtMost:     domainStats.Float(atMost),
		Alpha:            e.alpha,
		OverRepresented:  k > expected && atLeast < e.alpha,
		UnderRepresented: k < expected && atMost < e.alpha,
	}
}

func sameType(a, b, universe ports.Collection) error {
	if a.MemberType() != b.MemberType() {
		return core.NewIncompatibleTypesError(string(a.MemberType()), string(b.MemberType()))
	}
	if a.MemberType() != universe.MemberType() {
		return core.NewIncompatibleTypesError(string(a.MemberType()), string(universe.MemberType()))
	}
	return nil
}

// restrict keeps the members that are part of the universe
func restrict(members []string, universe ports.Collection) []string {
	kept := make([]string, 0, len(members))
	for _, m := range members {
		if universe.Contains(m) {
			kept = append(kept, m)
		}
	}
	return kept
}

func dedupe(members []string) []string {
	seen := make(map[string]struct{}, len(members))
	out := members[:0]
	for _, m := range members {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
