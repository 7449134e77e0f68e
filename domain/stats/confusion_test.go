package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfusionCounts_PerfectAgreement(t *testing.T) {
	c := ConfusionCounts{TP: 100}
	s := c.Statistics()

	assert.Equal(t, int64(100), c.Total())
	assert.InDelta(t, 1.0, s.Sensitivity.Value(), 1e-12)
	assert.InDelta(t, 1.0, s.PositivePredictive.Value(), 1e-12)
	assert.InDelta(t, 1.0, s.Accuracy.Value(), 1e-12)
	assert.InDelta(t, 1.0, s.PerformanceCoefficient.Value(), 1e-12)
	assert.InDelta(t, 1.0, s.FMeasure.Value(), 1e-12)
	assert.InDelta(t, 1.0, s.AverageSitePerformance.Value(), 1e-12)

	// TN+FP = 0 and TN+FN = 0
	assert.True(t, s.Specificity.IsNaN())
	assert.True(t, s.NegativePredictive.IsNaN())
	assert.True(t, s.MatthewsCorrelation.IsNaN())
}

func TestConfusionCounts_KnownValues(t *testing.T) {
	c := ConfusionCounts{TP: 40, FP: 10, TN: 45, FN: 5}
	s := c.Statistics()

	assert.InDelta(t, 40.0/45.0, s.Sensitivity.Value(), 1e-12)
	assert.InDelta(t, 45.0/55.0, s.Specificity.Value(), 1e-12)
	assert.InDelta(t, 40.0/50.0, s.PositivePredictive.Value(), 1e-12)
	assert.InDelta(t, 45.0/50.0, s.NegativePredictive.Value(), 1e-12)
	assert.InDelta(t, 40.0/55.0, s.PerformanceCoefficient.Value(), 1e-12)
	assert.InDelta(t, (40.0/45.0+40.0/50.0)/2, s.AverageSitePerformance.Value(), 1e-12)
	assert.InDelta(t, 80.0/95.0, s.FMeasure.Value(), 1e-12)
	assert.InDelta(t, 85.0/100.0, s.Accuracy.Value(), 1e-12)

	expectedMCC := (40.0*45.0 - 10.0*5.0) / math.Sqrt(50.0*45.0*55.0*50.0)
	assert.InDelta(t, expectedMCC, s.MatthewsCorrelation.Value(), 1e-12)
}

func TestConfusionCounts_EmptyIsAllNaN(t *testing.T) {
	s := ConfusionCounts{}.Statistics()
	for name, v := range map[string]Float{
		"sensitivity": s.Sensitivity,
		"specificity": s.Specificity,
		"ppv":         s.PositivePredictive,
		"npv":         s.NegativePredictive,
		"pc":          s.PerformanceCoefficient,
		"asp":         s.AverageSitePerformance,
		"f":           s.FMeasure,
		"accuracy":    s.Accuracy,
		"mcc":         s.MatthewsCorrelation,
	} {
		assert.True(t, v.IsNaN(), "%s should be NaN", name)
	}
}

func TestConfusionCounts_MCCBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		c := ConfusionCounts{
			TP: rng.Int63n(1000) + 1,
			FP: rng.Int63n(1000) + 1,
			TN: rng.Int63n(1000) + 1,
			FN: rng.Int63n(1000) + 1,
		}
		mcc := c.Statistics().MatthewsCorrelation.Value()
		assert.GreaterOrEqual(t, mcc, -1.0-1e-12)
		assert.LessOrEqual(t, mcc, 1.0+1e-12)
	}

	// Total disagreement
	assert.InDelta(t, -1.0, ConfusionCounts{FP: 10, FN: 10}.Statistics().MatthewsCorrelation.Value(), 1e-12)
}

func TestConfusionCounts_MCCNoOverflow(t *testing.T) {
	c := ConfusionCounts{TP: 3_000_000_000, FP: 1_000_000_000, TN: 3_000_000_000, FN: 1_000_000_000}
	mcc := c.Statistics().MatthewsCorrelation.Value()
	assert.InDelta(t, 0.5, mcc, 1e-9)
}

func TestConfusionCounts_Add(t *testing.T) {
	a := ConfusionCounts{TP: 1, FP: 2, TN: 3, FN: 4}
	b := ConfusionCounts{TP: 10, FP: 20, TN: 30, FN: 40}
	assert.Equal(t, ConfusionCounts{TP: 11, FP: 22, TN: 33, FN: 44}, a.Add(b))
	assert.Equal(t, a.Total()+b.Total(), a.Add(b).Total())
}
