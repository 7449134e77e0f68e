package stats

import (
	"fmt"
	"sort"

	"motiflab/domain/core"
)

// ============================================================================
// DESCRIPTIVE STATISTICS
// ============================================================================

// Statistic summarizes one numeric sample. It is derived once and never mutated;
// use Clone before handing it to code that may modify the histogram.
type Statistic struct {
	Count             int   `json:"count"`
	Min               Float `json:"min"`
	Max               Float `json:"max"`
	Average           Float `json:"average"`
	Median            Float `json:"median"`
	FirstQuartile     Float `json:"first_quartile"`
	ThirdQuartile     Float `json:"third_quartile"`
	StandardDeviation Float `json:"standard_deviation"` // Population (divides by N)
	Bins              []int `json:"bins"`
	BinWidth          Float `json:"bin_width"`
	BinStart          Float `json:"bin_start"` // Lower edge of Bins[0]
}

// EmptyStatistic is the statistic of a sample without values
func EmptyStatistic(binWidth float64) Statistic {
	return Statistic{
		Min:               NaN(),
		Max:               NaN(),
		Average:           NaN(),
		Median:            NaN(),
		FirstQuartile:     NaN(),
		ThirdQuartile:     NaN(),
		StandardDeviation: NaN(),
		Bins:              []int{},
		BinWidth:          Float(binWidth),
		BinStart:          NaN(),
	}
}

// IsEmpty reports whether the statistic was derived from no values
func (s Statistic) IsEmpty() bool {
	return s.Count == 0
}

// Clone returns a deep copy
func (s Statistic) Clone() Statistic {
	c := s
	c.Bins = make([]int, len(s.Bins))
	copy(c.Bins, s.Bins)
	return c
}

// BinRange returns the half-open value range [low, high) covered by bin i
func (s Statistic) BinRange(i int) (low, high float64) {
	low = float64(s.BinStart) + float64(i)*float64(s.BinWidth)
	return low, low + float64(s.BinWidth)
}

// ============================================================================
// SET OVERLAP
// ============================================================================

// ContingencyTable describes the overlap of two sets A and B inside a background universe.
// All counts are restricted to the background.
type ContingencyTable struct {
	SizeA        int `json:"size_a"`
	SizeB        int `json:"size_b"`
	Intersection int `json:"intersection"`
	Union        int `json:"union"`
	Background   int `json:"background"`
}

// NewContingencyTable builds a table from the two set sizes and their intersection
func NewContingencyTable(sizeA, sizeB, intersection, background int) (ContingencyTable, error) {
	t := ContingencyTable{
		SizeA:        sizeA,
		SizeB:        sizeB,
		Intersection: intersection,
		Union:        sizeA + sizeB - intersection,
		Background:   background,
	}
	if err := t.Validate(); err != nil {
		return ContingencyTable{}, err
	}
	return t, nil
}

// Validate checks the table invariants
func (t ContingencyTable) Validate() error {
	switch {
	case t.SizeA < 0 || t.SizeB < 0 || t.Intersection < 0 || t.Background < 0:
		return fmt.Errorf("%w: negative count in contingency table", core.ErrInvalidInput)
	case t.Intersection > t.SizeA || t.Intersection > t.SizeB:
		return fmt.Errorf("%w: intersection %d exceeds set size (%d, %d)", core.ErrInvalidInput, t.Intersection, t.SizeA, t.SizeB)
	case t.Union < t.Intersection || t.Union > t.Background:
		return fmt.Errorf("%w: union %d outside [%d, %d]", core.ErrInvalidInput, t.Union, t.Intersection, t.Background)
	}
	return nil
}

// OnlyA counts members of A that are not in B
func (t ContingencyTable) OnlyA() int { return t.SizeA - t.Intersection }

// OnlyB counts members of B that are not in A
func (t ContingencyTable) OnlyB() int { return t.SizeB - t.Intersection }

// Neither counts background members in neither set
func (t ContingencyTable) Neither() int { return t.Background - t.Union }

// OverlapResult is the significance of one set-pair overlap
type OverlapResult struct {
	Table            ContingencyTable `json:"table"`
	Expected         Float            `json:"expected"`         // SizeA*SizeB/Background
	PValueAtLeast    Float            `json:"p_value_at_least"` // P(X >= intersection)
	PValueAtMost     Float            `json:"p_value_at_most"`  // P(X <= intersection)
	Alpha            float64          `json:"alpha"`
	OverRepresented  bool             `json:"over_represented"`
	UnderRepresented bool             `json:"under_represented"`
}

// ClusterOverlap is the overlap of one cluster of a partition with the target collection
type ClusterOverlap struct {
	Cluster string `json:"cluster"`
	OverlapResult
}

// SortClustersByName orders results lexically by cluster name
func SortClustersByName(results []ClusterOverlap) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Cluster < results[j].Cluster
	})
}

// SortClustersByPValue orders results by ascending over-representation p-value.
// NaN sorts last; ties fall back to the cluster name.
func SortClustersByPValue(results []ClusterOverlap) {
	sort.SliceStable(results, func(i, j int) bool {
		pi, pj := results[i].PValueAtLeast, results[j].PValueAtLeast
		switch {
		case pi.IsNaN() && pj.IsNaN():
			return results[i].Cluster < results[j].Cluster
		case pi.IsNaN():
			return false
		case pj.IsNaN():
			return true
		case pi != pj:
			return pi < pj
		}
		return results[i].Cluster < results[j].Cluster
	})
}

// ============================================================================
// CORRELATION
// ============================================================================

// CorrelationResult holds both coefficients computed over the same paired keys
type CorrelationResult struct {
	N              int   `json:"n"`
	Pearson        Float `json:"pearson"`
	Spearman       Float `json:"spearman"`
	PearsonPValue  Float `json:"pearson_p_value"`  // Two-tailed, t with N-2 df
	SpearmanPValue Float `json:"spearman_p_value"` // Two-tailed, t with N-2 df
}

// ============================================================================
// REGRESSION
// ============================================================================

// RegressionPoint is one (x, y) pair as used or skipped by a fit.
// Excluded points keep their label and response but carry X = NaN.
type RegressionPoint struct {
	Label    string `json:"label"`
	X        Float  `json:"x"`
	Y        Float  `json:"y"`
	Excluded bool   `json:"excluded,omitempty"`
}

// RegressionResult is an ordinary least-squares fit y = Intercept + Slope*x
type RegressionResult struct {
	Slope           Float             `json:"slope"`
	Intercept       Float             `json:"intercept"`
	SlopeStdErr     Float             `json:"slope_std_err"`
	InterceptStdErr Float             `json:"intercept_std_err"`
	Significance    Float             `json:"significance"` // Two-tailed p-value of the slope t statistic
	R               Float             `json:"r"`
	RSquared        Float             `json:"r_squared"`
	SSE             Float             `json:"sse"` // Sum of squared errors
	MSE             Float             `json:"mse"` // SSE/(N-2)
	SSR             Float             `json:"ssr"` // Regression sum of squares
	N               int               `json:"n"`   // Points used in the fit
	Normalized      bool              `json:"normalized,omitempty"`
	Points          []RegressionPoint `json:"points"`
}

// Predict evaluates the fitted line at x
func (r RegressionResult) Predict(x float64) float64 {
	return float64(r.Intercept) + float64(r.Slope)*x
}

// ============================================================================
// OCCURRENCES
// ============================================================================

// CategoryCount is the tally of one category across a sequence collection
type CategoryCount struct {
	SequenceSupport  int `json:"sequence_support"`  // Sequences with at least one occurrence
	TotalOccurrences int `json:"total_occurrences"` // Occurrences over all sequences
}

// OccurrenceTally maps categories (module IDs, region types) to their counts
type OccurrenceTally struct {
	SequenceCount int                      `json:"sequence_count"`
	Counts        map[string]CategoryCount `json:"counts"`
	Unknown       map[string]CategoryCount `json:"unknown,omitempty"` // Labels outside the reference collection
}

// NewOccurrenceTally creates a tally pre-seeded with zero counts for every category
func NewOccurrenceTally(categories []string) OccurrenceTally {
	counts := make(map[string]CategoryCount, len(categories))
	for _, c := range categories {
		counts[c] = CategoryCount{}
	}
	return OccurrenceTally{Counts: counts}
}

// Categories returns the known categories in lexical order
func (t OccurrenceTally) Categories() []string {
	names := make([]string, 0, len(t.Counts))
	for name := range t.Counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Percentage returns the share of examined sequences that contain the category, in percent
func (t OccurrenceTally) Percentage(category string) Float {
	c, ok := t.Counts[category]
	if !ok {
		return NaN()
	}
	return ratio(float64(c.SequenceSupport)*100, float64(t.SequenceCount))
}
