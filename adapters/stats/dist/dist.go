// Package dist holds the p-value helpers shared by the correlation and regression engines.
package dist

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TTestPValue is the two-tailed p-value of t under Student's t-distribution with df
// degrees of freedom. NaN when df <= 0 or t is NaN.
func TTestPValue(t float64, df int) float64 {
	if df <= 0 || math.IsNaN(t) {
		return math.NaN()
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return 2 * tDist.Survival(math.Abs(t))
}

// CorrelationPValue tests a correlation coefficient r computed from n pairs against zero
func CorrelationPValue(r float64, n int) float64 {
	if n < 3 || math.IsNaN(r) {
		return math.NaN()
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	df := n - 2
	t := r * math.Sqrt(float64(df)/(1-r*r))
	return TTestPValue(t, df)
}
