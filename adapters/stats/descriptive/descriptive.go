// Package descriptive derives min/max/mean/stddev, quartiles and histograms from numeric samples.
package descriptive

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"motiflab/domain/core"
	domainStats "motiflab/domain/stats"
	"motiflab/ports"

	"github.com/montanaflynn/stats"
)

// Layout controls how values outside the histogram range are binned
type Layout int

const (
	// LayoutExtend grows the histogram to cover every value
	LayoutExtend Layout = iota
	// LayoutIntegers aligns the first bin to floor(min) and clamps strays into the edge bins
	LayoutIntegers
	// LayoutPercentage fixes the range to [0, 100] and clamps strays into the edge bins
	LayoutPercentage
)

// MaxBins bounds the histogram size; a tiny bin width over a wide range is almost
// always a caller mistake.
const MaxBins = 1_000_000

// ParseLayout accepts "extend", "integers" or "percentage"; empty means extend
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "extend":
		return LayoutExtend, nil
	case "integers":
		return LayoutIntegers, nil
	case "percentage":
		return LayoutPercentage, nil
	}
	return LayoutExtend, fmt.Errorf("%w: unknown histogram layout %q", core.ErrInvalidInput, s)
}

// Range is an explicit histogram range; End lands in the last bin
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// HistogramOptions configures binning
type HistogramOptions struct {
	BinWidth float64
	Range    *Range
	Layout   Layout
}

func (o HistogramOptions) validate() error {
	if !(o.BinWidth > 0) || math.IsInf(o.BinWidth, 1) {
		return core.ErrInvalidBinWidth
	}
	if o.Range != nil && !(o.Range.End >= o.Range.Start) {
		return fmt.Errorf("%w: histogram range end %g before start %g", core.ErrInvalidInput, o.Range.End, o.Range.Start)
	}
	return nil
}

// Compute derives the statistic of sample. NaN and infinite values are treated as missing; a sample
// without values yields an all-NaN statistic rather than an error.
func Compute(sample []float64, opts HistogramOptions) (domainStats.Statistic, error) {
	if err := opts.validate(); err != nil {
		return domainStats.Statistic{}, err
	}

	values := present(sample)
	if len(values) == 0 {
		return domainStats.EmptyStatistic(opts.BinWidth), nil
	}

	min, err := stats.Min(values)
	if err != nil {
		return domainStats.Statistic{}, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return domainStats.Statistic{}, err
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return domainStats.Statistic{}, err
	}
	stdDev, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return domainStats.Statistic{}, err
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	bins, start, err := histogram(values, min, max, opts)
	if err != nil {
		return domainStats.Statistic{}, err
	}

	return domainStats.Statistic{
		Count:             len(values),
		Min:               domainStats.Float(min),
		Max:               domainStats.Float(max),
		Average:           domainStats.Float(mean),
		Median:            domainStats.Float(quantile(sorted, 0.5)),
		FirstQuartile:     domainStats.Float(quantile(sorted, 0.25)),
		ThirdQuartile:     domainStats.Float(quantile(sorted, 0.75)),
		StandardDeviation: domainStats.Float(stdDev),
		Bins:              bins,
		BinWidth:          domainStats.Float(opts.BinWidth),
		BinStart:          domainStats.Float(start),
	}, nil
}

// Summarize computes the statistic of a numeric map. When filter is set only its
// members are used; otherwise every key of the map. Members without a value are skipped.
func Summarize(m ports.NumericMap, filter ports.Collection, opts HistogramOptions) (domainStats.Statistic, error) {
	keys := m.Keys()
	if filter != nil {
		if filter.MemberType() != m.MemberType() {
			return domainStats.Statistic{}, core.NewIncompatibleTypesError(string(m.MemberType()), string(filter.MemberType()))
		}
		keys = filter.Members()
	}

	sample := make([]float64, 0, len(keys))
	for _, key := range keys {
		if v, ok := m.Value(key); ok {
			sample = append(sample, v)
		}
	}
	return Compute(sample, opts)
}

// Percentile returns the p-th percentile (0-100) using the same interpolation as the
// quartiles in Compute. NaN for an empty sample or p outside [0, 100].
func Percentile(sample []float64, p float64) float64 {
	values := present(sample)
	if len(values) == 0 || p < 0 || p > 100 {
		return math.NaN()
	}
	sort.Float64s(values)
	return quantile(values, p/100)
}

// quantile interpolates linearly between the closest ranks (R type 7) on a sorted sample.
// Monotone in p, so Q1 <= median <= Q3 and min <= median <= max hold.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

func histogram(values []float64, min, max float64, opts HistogramOptions) ([]int, float64, error) {
	width := opts.BinWidth
	start, end := min, max
	switch {
	case opts.Range != nil:
		start, end = opts.Range.Start, opts.Range.End
	case opts.Layout == LayoutPercentage:
		start, end = 0, 100
	case opts.Layout == LayoutIntegers:
		start, end = math.Floor(min), max
	}

	span := math.Floor((end-start)/width) + 1
	if !(span <= MaxBins) {
		return nil, 0, fmt.Errorf("%w: bin width %g yields %.0f bins", core.ErrInvalidInput, width, span)
	}
	n := int(span)
	clamp := opts.Layout != LayoutExtend

	indexes := make([]int, len(values))
	lo, hi := 0, n-1
	for i, v := range values {
		f := math.Floor((v - start) / width)
		if clamp {
			f = math.Max(0, math.Min(float64(n-1), f))
		} else if !(f >= -MaxBins && f <= float64(n)+MaxBins) {
			return nil, 0, fmt.Errorf("%w: value %g lies more than %d bins of width %g outside the range", core.ErrInvalidInput, v, MaxBins, width)
		}
		b := int(f)
		indexes[i] = b
		if b < lo {
			lo = b
		}
		if b > hi {
			hi = b
		}
	}
	if float64(hi)-float64(lo)+1 > MaxBins {
		return nil, 0, fmt.Errorf("%w: values span %d bins of width %g", core.ErrInvalidInput, hi-lo+1, width)
	}

	bins := make([]int, hi-lo+1)
	for _, b := range indexes {
		bins[b-lo]++
	}
	return bins, start + float64(lo)*width, nil
}

func present(sample []float64) []float64 {
	values := make([]float64, 0, len(sample))
	for _, v := range sample {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			values = append(values, v)
		}
	}
	return values
}
