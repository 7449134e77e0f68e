// Package correlation computes Pearson and Spearman coefficients between numeric maps.
package correlation

import (
	"fmt"
	"math"
	"sort"

	"motiflab/adapters/stats/dist"
	"motiflab/domain/core"
	domainStats "motiflab/domain/stats"
	"motiflab/ports"

	"gonum.org/v1/gonum/stat"
)

// MinPairs is the smallest number of complete pairs a coefficient is defined for
const MinPairs = 2

// Correlate pairs the values of x and y by key and computes both coefficients.
// Keys come from filter when given, otherwise from x. Keys missing on either side or
// carrying NaN are skipped.
func Correlate(x, y ports.NumericMap, filter ports.Collection) (domainStats.CorrelationResult, error) {
	if x.MemberType() != y.MemberType() {
		return domainStats.CorrelationResult{}, core.NewIncompatibleTypesError(string(x.MemberType()), string(y.MemberType()))
	}

	keys := x.Keys()
	if filter != nil {
		if filter.MemberType() != x.MemberType() {
			return domainStats.CorrelationResult{}, core.NewIncompatibleTypesError(string(x.MemberType()), string(filter.MemberType()))
		}
		keys = filter.Members()
	}

	xs := make([]float64, 0, len(keys))
	ys := make([]float64, 0, len(keys))
	for _, key := range keys {
		xv, ok := x.Value(key)
		if !ok || math.IsNaN(xv) {
			continue
		}
		yv, ok := y.Value(key)
		if !ok || math.IsNaN(yv) {
			continue
		}
		xs = append(xs, xv)
		ys = append(ys, yv)
	}

	return Samples(xs, ys)
}

// Samples computes both coefficients over already paired slices
func Samples(x, y []float64) (domainStats.CorrelationResult, error) {
	if err := checkPairs(x, y); err != nil {
		return domainStats.CorrelationResult{}, err
	}
	n := len(x)

	r := pearson(x, y)
	rho := pearson(Ranks(x), Ranks(y))
	return domainStats.CorrelationResult{
		N:              n,
		Pearson:        domainStats.Float(r),
		Spearman:       domainStats.Float(rho),
		PearsonPValue:  domainStats.Float(dist.CorrelationPValue(r, n)),
		SpearmanPValue: domainStats.Float(dist.CorrelationPValue(rho, n)),
	}, nil
}

// Pearson returns the product-moment correlation of two paired samples
func Pearson(x, y []float64) (float64, error) {
	if err := checkPairs(x, y); err != nil {
		return math.NaN(), err
	}
	return pearson(x, y), nil
}

// Spearman returns the rank correlation of two paired samples; ties get average ranks
func Spearman(x, y []float64) (float64, error) {
	if err := checkPairs(x, y); err != nil {
		return math.NaN(), err
	}
	return pearson(Ranks(x), Ranks(y)), nil
}

// Ranks converts values to 1-based ranks, averaging ranks within tie groups
func Ranks(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return []float64{}
	}

	type pair struct {
		value float64
		index int
	}
	pairs := make([]pair, n)
	for i, v := range data {
		pairs[i] = pair{value: v, index: i}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && pairs[j].value == pairs[i].value {
			j++
		}
		avg := float64(i+1) + float64(j-i-1)/2
		for k := i; k < j; k++ {
			ranks[pairs[k].index] = avg
		}
		i = j
	}
	return ranks
}

// pearson is NaN when either sample is constant
func pearson(x, y []float64) float64 {
	r := stat.Correlation(x, y, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	// Rounding can push |r| just past one
	return math.Max(-1, math.Min(1, r))
}

func checkPairs(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: samples of length %d and %d cannot be paired", core.ErrInvalidInput, len(x), len(y))
	}
	if len(x) < MinPairs {
		return core.NewInsufficientDataError(MinPairs, len(x))
	}
	return nil
}
