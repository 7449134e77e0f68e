package stats

import (
	"bytes"
	"math"
	"strconv"
)

// Float is a float64 whose JSON form uses null for NaN and infinities, so results that
// carry undefined ratios still encode.
type Float float64

// NaN returns the undefined value
func NaN() Float {
	return Float(math.NaN())
}

// IsNaN reports whether f is undefined
func (f Float) IsNaN() bool {
	return math.IsNaN(float64(f))
}

// Value returns f as a float64
func (f Float) Value() float64 {
	return float64(f)
}

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = NaN()
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// ratio divides and returns NaN instead of failing on a zero denominator
func ratio(numerator, denominator float64) Float {
	if denominator == 0 {
		return NaN()
	}
	return Float(numerator / denominator)
}
