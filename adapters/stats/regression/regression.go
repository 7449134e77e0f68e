// Package regression fits simple ordinary-least-squares lines between per-sequence values.
package regression

import (
	"math"

	"motiflab/adapters/stats/dist"
	"motiflab/domain/analysis"
	"motiflab/domain/core"
	"motiflab/domain/region"
	domainStats "motiflab/domain/stats"
	"motiflab/ports"

	"gonum.org/v1/gonum/stat"
)

// MinPoints is the smallest number of usable points a line can be fitted through
const MinPoints = 2

// Point is one (x, y) observation. Missing marks a predictor that could not be
// measured, which differs from a measured zero.
type Point struct {
	Label   string
	X       float64
	Y       float64
	Missing bool
}

// Options controls which points are used and how the predictor is scaled
type Options struct {
	SkipMissing bool `json:"skip_missing"`
	Normalize   bool `json:"normalize"`
}

// Fit regresses Y on X. Points with a NaN coordinate, and missing points when
// SkipMissing is set, are left out of the fit but kept in the result with X = NaN.
func Fit(points []Point, opts Options) (domainStats.RegressionResult, error) {
	used := make([]int, 0, len(points))
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || (opts.SkipMissing && p.Missing) {
			continue
		}
		used = append(used, i)
	}
	if len(used) < MinPoints {
		return domainStats.RegressionResult{}, core.NewInsufficientDataError(MinPoints, len(used))
	}

	xs := make([]float64, len(used))
	ys := make([]float64, len(used))
	for j, i := range used {
		xs[j], ys[j] = points[i].X, points[i].Y
	}
	if opts.Normalize {
		minMaxScale(xs)
	}

	result := ols(xs, ys)
	result.Normalized = opts.Normalize
	result.Points = make([]domainStats.RegressionPoint, len(points))
	for i, p := range points {
		result.Points[i] = domainStats.RegressionPoint{
			Label:    p.Label,
			X:        domainStats.NaN(),
			Y:        domainStats.Float(p.Y),
			Excluded: true,
		}
	}
	for j, i := range used {
		result.Points[i].X = domainStats.Float(xs[j])
		result.Points[i].Excluded = false
	}
	return result, nil
}

// FitMotifScores regresses a per-sequence response on the summed site scores of one motif.
// A sequence without sites of the motif yields a missing predictor.
func FitMotifScores(motif string, sites ports.RegionDataset, sequences []region.Sequence, response ports.NumericMap, opts Options) (domainStats.RegressionResult, error) {
	if response.MemberType() != analysis.MemberSequence {
		return domainStats.RegressionResult{}, core.NewIncompatibleTypesError(string(analysis.MemberSequence), string(response.MemberType()))
	}

	points := make([]Point, 0, len(sequences))
	for _, seq := range sequences {
		regions, err := sites.Regions(seq.Name)
		if err != nil {
			return domainStats.RegressionResult{}, err
		}

		score, count := 0.0, 0
		for _, r := range regions {
			if r.Type == motif {
				score += r.Score
				count++
			}
		}

		y, ok := response.Value(seq.Name)
		if !ok {
			y = math.NaN()
		}
		points = append(points, Point{Label: seq.Name, X: score, Y: y, Missing: count == 0})
	}
	return Fit(points, opts)
}

func ols(xs, ys []float64) domainStats.RegressionResult {
	n := len(xs)
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	xMean, yMean := stat.Mean(xs, nil), stat.Mean(ys, nil)
	var sxx, sse, ssr float64
	for i := range xs {
		dx := xs[i] - xMean
		sxx += dx * dx
		fitted := intercept + slope*xs[i]
		sse += (ys[i] - fitted) * (ys[i] - fitted)
		ssr += (fitted - yMean) * (fitted - yMean)
	}

	mse := math.NaN()
	if n > 2 {
		mse = sse / float64(n-2)
	}
	slopeErr := math.Sqrt(mse / sxx)
	interceptErr := math.Sqrt(mse * (1/float64(n) + xMean*xMean/sxx))

	significance := math.NaN()
	if !math.IsNaN(slopeErr) {
		significance = dist.TTestPValue(slope/slopeErr, n-2)
	}

	r := stat.Correlation(xs, ys, nil)
	return domainStats.RegressionResult{
		Slope:           domainStats.Float(slope),
		Intercept:       domainStats.Float(intercept),
		SlopeStdErr:     domainStats.Float(slopeErr),
		InterceptStdErr: domainStats.Float(interceptErr),
		Significance:    domainStats.Float(significance),
		R:               domainStats.Float(r),
		RSquared:        domainStats.Float(r * r),
		SSE:             domainStats.Float(sse),
		MSE:             domainStats.Float(mse),
		SSR:             domainStats.Float(ssr),
		N:               n,
	}
}

// minMaxScale maps xs onto [0, 1] in place; a constant predictor maps to 0
func minMaxScale(xs []float64) {
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	span := hi - lo
	for i, x := range xs {
		if span == 0 {
			xs[i] = 0
			continue
		}
		xs[i] = (x - lo) / span
	}
}
