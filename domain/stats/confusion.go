package stats

import "math"

// ConfusionCounts classifies nucleotide positions of a prediction against an answer.
// TP+FP+TN+FN equals the number of positions examined.
type ConfusionCounts struct {
	TP int64 `json:"tp"` // Covered by both
	FP int64 `json:"fp"` // Prediction only
	TN int64 `json:"tn"` // Neither
	FN int64 `json:"fn"` // Answer only
}

// Add returns the element-wise sum of c and other
func (c ConfusionCounts) Add(other ConfusionCounts) ConfusionCounts {
	return ConfusionCounts{
		TP: c.TP + other.TP,
		FP: c.FP + other.FP,
		TN: c.TN + other.TN,
		FN: c.FN + other.FN,
	}
}

// Total returns the number of positions examined
func (c ConfusionCounts) Total() int64 {
	return c.TP + c.FP + c.TN + c.FN
}

// AgreementStatistics are the ratios derived from one ConfusionCounts.
// Any ratio with a zero denominator is NaN.
type AgreementStatistics struct {
	Sensitivity            Float `json:"sensitivity"`              // TP/(TP+FN)
	Specificity            Float `json:"specificity"`              // TN/(TN+FP)
	PositivePredictive     Float `json:"ppv"`                      // TP/(TP+FP)
	NegativePredictive     Float `json:"npv"`                      // TN/(TN+FN)
	PerformanceCoefficient Float `json:"performance_coefficient"`  // TP/(TP+FP+FN)
	AverageSitePerformance Float `json:"average_site_performance"` // (Sensitivity+PPV)/2
	FMeasure               Float `json:"f_measure"`                // 2TP/(2TP+FP+FN)
	Accuracy               Float `json:"accuracy"`                 // (TP+TN)/total
	MatthewsCorrelation    Float `json:"mcc"`
}

// Statistics derives the agreement ratios
func (c ConfusionCounts) Statistics() AgreementStatistics {
	tp, fp, tn, fn := float64(c.TP), float64(c.FP), float64(c.TN), float64(c.FN)

	s := AgreementStatistics{
		Sensitivity:            ratio(tp, tp+fn),
		Specificity:            ratio(tn, tn+fp),
		PositivePredictive:     ratio(tp, tp+fp),
		NegativePredictive:     ratio(tn, tn+fn),
		PerformanceCoefficient: ratio(tp, tp+fp+fn),
		FMeasure:               ratio(2*tp, 2*tp+fp+fn),
		Accuracy:               ratio(tp+tn, tp+fp+tn+fn),
	}
	s.AverageSitePerformance = (s.Sensitivity + s.PositivePredictive) / 2

	// Product computed in float64; the int64 product overflows on genome-sized inputs.
	denominator := math.Sqrt((tp + fp) * (tp + fn) * (tn + fp) * (tn + fn))
	s.MatthewsCorrelation = ratio(tp*tn-fp*fn, denominator)
	return s
}

// AgreementResult is the outcome of comparing two region datasets
type AgreementResult struct {
	Prediction  string                     `json:"prediction"`
	Answer      string                     `json:"answer"`
	Sequences   int                        `json:"sequences"`
	Counts      ConfusionCounts            `json:"counts"`
	Statistics  AgreementStatistics        `json:"statistics"`
	PerSequence map[string]ConfusionCounts `json:"per_sequence,omitempty"`
}
