package calculator

import "errors"

// rsiEpsilon floors the loss average so RSI stays defined when a window has
// no down days.
const rsiEpsilon = 1e-9

// CalculateRSI computes the Wilder-smoothed RSI series over close prices.
// Positive and negative daily deltas are averaged separately with smoothing
// 1/period, seeded from the first delta. Output is aligned to the input; the
// first element has no delta and carries a neutral 50.
func CalculateRSI(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(closes) < 2 {
		return nil, errors.New("not enough data for RSI calculation")
	}
	alpha := 1.0 / float64(period)
	out := make([]float64, len(closes))
	out[0] = 50.0

	var avgGain, avgLoss float64
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		if i == 1 {
			avgGain, avgLoss = gain, loss
		} else {
			avgGain = alpha*gain + (1-alpha)*avgGain
			avgLoss = alpha*loss + (1-alpha)*avgLoss
		}
		denom := avgLoss
		if denom < rsiEpsilon {
			denom = rsiEpsilon
		}
		rs := avgGain / denom
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out, nil
}
