// Package calculator derives technical indicators from daily bar series.
package calculator

import "HKStockBot/internal/model"

// Compute derives the indicator snapshot for a series under the given mode.
// ok is false when the series has fewer bars than the mode's minimum; no
// indicator math is attempted in that case so short windows never produce
// undefined results. The MinBars guard makes the primitive calls below
// infallible.
func Compute(series model.Series, mode model.Mode) (model.Snapshot, bool) {
	p := mode.Params()
	if len(series) < p.MinBars {
		return model.Snapshot{}, false
	}

	closes := series.Closes()
	volumes := series.Volumes()

	fast, _ := CalculateEMA(closes, p.FastEMA)
	slow, _ := CalculateEMA(closes, p.SlowEMA)
	rsi, _ := CalculateRSI(closes, p.RSIPeriod)
	low, high, _ := CalculateCloseRange(closes)

	snap := model.Snapshot{
		Price:     closes[len(closes)-1],
		FastEMA:   fast[len(fast)-1],
		SlowEMA:   slow[len(slow)-1],
		RSI:       rsi[len(rsi)-1],
		Volume:    volumes[len(volumes)-1],
		RangeLow:  low,
		RangeHigh: high,
	}
	if base, ok := CalculateVolumeBaseline(volumes); ok && base > 0 {
		snap.VolumeBase = base
		snap.HasVolumeBase = true
	}
	return snap, true
}
