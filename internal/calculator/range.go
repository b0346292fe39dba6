package calculator

import (
	"errors"
	"math"
)

// CalculateCloseRange returns the lowest and highest close over the whole
// fetched window.
func CalculateCloseRange(closes []float64) (low, high float64, err error) {
	if len(closes) == 0 {
		return 0, 0, errors.New("no closes provided")
	}
	low = math.Inf(1)
	high = math.Inf(-1)
	for _, c := range closes {
		if c < low {
			low = c
		}
		if c > high {
			high = c
		}
	}
	return low, high, nil
}
