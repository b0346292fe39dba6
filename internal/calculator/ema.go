package calculator

import "errors"

// CalculateEMA computes the exponential moving average series of the given
// values with smoothing factor 2/(span+1). The first emitted value equals the
// first input value, so there is no look-ahead.
func CalculateEMA(values []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	if len(values) == 0 {
		return nil, errors.New("no values provided")
	}
	alpha := 2.0 / float64(span+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out, nil
}
