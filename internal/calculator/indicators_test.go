package calculator

import (
	"testing"
	"time"

	"HKStockBot/internal/model"
)

func barSeries(closes []float64) model.Series {
	s := make(model.Series, len(closes))
	for i, c := range closes {
		s[i] = model.OHLCV{
			Time:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000000,
		}
	}
	return s
}

func TestCompute_InsufficientBoundary(t *testing.T) {
	tests := []struct {
		mode    model.Mode
		minBars int
	}{
		{model.ModeShort, 30},
		{model.ModeSwing, 50},
		{model.ModePosition, 80},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			below := barSeries(rampSeries(100, tt.minBars-1, 0.5))
			if _, ok := Compute(below, tt.mode); ok {
				t.Errorf("%d bars: expected sufficient=false", tt.minBars-1)
			}
			exact := barSeries(rampSeries(100, tt.minBars, 0.5))
			if _, ok := Compute(exact, tt.mode); !ok {
				t.Errorf("%d bars: expected sufficient=true", tt.minBars)
			}
		})
	}
}

func TestCompute_SnapshotValues(t *testing.T) {
	closes := rampSeries(100, 60, 0.5) // 100 .. 129.5
	snap, ok := Compute(barSeries(closes), model.ModeSwing)
	if !ok {
		t.Fatal("expected sufficient=true for 60 bars")
	}
	if snap.Price != closes[len(closes)-1] {
		t.Errorf("expected price %f, got %f", closes[len(closes)-1], snap.Price)
	}
	// Rising series: price leads the fast EMA, fast leads the slow.
	if !(snap.Price > snap.FastEMA && snap.FastEMA > snap.SlowEMA) {
		t.Errorf("expected price > fastEMA > slowEMA, got %f / %f / %f", snap.Price, snap.FastEMA, snap.SlowEMA)
	}
	if snap.RangeLow != 100 || snap.RangeHigh != closes[len(closes)-1] {
		t.Errorf("unexpected range: %f .. %f", snap.RangeLow, snap.RangeHigh)
	}
	if !snap.HasVolumeBase {
		t.Error("expected volume baseline for 60 bars")
	}
	if snap.VolumeBase != 1000000 {
		t.Errorf("expected baseline 1000000, got %f", snap.VolumeBase)
	}
}

func TestCalculateVolumeBaseline_WindowBoundary(t *testing.T) {
	if _, ok := CalculateVolumeBaseline(rampSeries(1000, 19, 0)); ok {
		t.Error("expected no baseline below 20 bars")
	}
	base, ok := CalculateVolumeBaseline(rampSeries(1000, 20, 0))
	if !ok {
		t.Fatal("expected baseline at 20 bars")
	}
	if base != 1000 {
		t.Errorf("expected 1000, got %f", base)
	}
}

func TestCalculateCloseRange(t *testing.T) {
	low, high, err := CalculateCloseRange([]float64{5, 3, 9, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if low != 3 || high != 9 {
		t.Errorf("expected 3..9, got %f..%f", low, high)
	}
	if _, _, err := CalculateCloseRange(nil); err == nil {
		t.Error("expected error for empty input")
	}
}
