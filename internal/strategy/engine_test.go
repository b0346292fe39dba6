package strategy

import (
	"reflect"
	"strings"
	"testing"

	"HKStockBot/internal/model"
)

func TestRecommend_BullishTrend(t *testing.T) {
	snap := model.Snapshot{
		Price:     110,
		FastEMA:   100,
		SlowEMA:   90,
		RSI:       50,
		RangeLow:  50,
		RangeHigh: 200,
	}
	rec := Recommend(snap, model.ModeSwing)
	if rec.Score != 2 {
		t.Errorf("expected score 2, got %d", rec.Score)
	}
	if rec.Action != model.ActionBuy {
		t.Errorf("expected buy, got %s", rec.Action)
	}
	if len(rec.Reasons) == 0 || !strings.Contains(rec.Reasons[0], "多頭") {
		t.Errorf("expected bullish trend reason, got %v", rec.Reasons)
	}
	if !strings.Contains(rec.Reasons[0], "EMA20") || !strings.Contains(rec.Reasons[0], "EMA50") {
		t.Errorf("expected mode EMA spans in reason, got %q", rec.Reasons[0])
	}
}

func TestRecommend_BearishTrend(t *testing.T) {
	snap := model.Snapshot{
		Price:     90,
		FastEMA:   100,
		SlowEMA:   110,
		RSI:       50,
		RangeLow:  50,
		RangeHigh: 200,
	}
	rec := Recommend(snap, model.ModeSwing)
	if rec.Score != -2 {
		t.Errorf("expected score -2, got %d", rec.Score)
	}
	if rec.Action != model.ActionSell {
		t.Errorf("expected sell, got %s", rec.Action)
	}
	if len(rec.Reasons) == 0 || !strings.Contains(rec.Reasons[0], "空頭") {
		t.Errorf("expected bearish trend reason, got %v", rec.Reasons)
	}
}

func TestRecommend_MixedTrendAlwaysHasReason(t *testing.T) {
	// Price between the EMAs: no trend score, but the reason is kept so the
	// output stays interpretable.
	snap := model.Snapshot{
		Price:     100,
		FastEMA:   105,
		SlowEMA:   95,
		RSI:       50,
		RangeLow:  50,
		RangeHigh: 200,
	}
	rec := Recommend(snap, model.ModeSwing)
	if rec.Score != 0 {
		t.Errorf("expected score 0, got %d", rec.Score)
	}
	if rec.Action != model.ActionHold {
		t.Errorf("expected hold, got %s", rec.Action)
	}
	if len(rec.Reasons) != 1 || rec.Reasons[0] != "均線訊號混合" {
		t.Errorf("expected only mixed trend reason, got %v", rec.Reasons)
	}
}

func TestRecommend_MomentumThresholds(t *testing.T) {
	tests := []struct {
		rsi   float64
		delta int
	}{
		{34.9, 1},
		{35.0, 0},
		{65.0, 0},
		{65.1, -1},
	}
	for _, tt := range tests {
		snap := model.Snapshot{
			Price:     100,
			FastEMA:   105,
			SlowEMA:   95,
			RSI:       tt.rsi,
			RangeLow:  50,
			RangeHigh: 200,
		}
		rec := Recommend(snap, model.ModeSwing)
		if rec.Score != tt.delta {
			t.Errorf("RSI %.1f: expected score %d, got %d", tt.rsi, tt.delta, rec.Score)
		}
	}
}

func TestRecommend_VolumeConfirmation(t *testing.T) {
	base := model.Snapshot{
		Price:         100,
		FastEMA:       105,
		SlowEMA:       95,
		RSI:           50,
		RangeLow:      50,
		RangeHigh:     200,
		VolumeBase:    1000,
		HasVolumeBase: true,
	}

	expand := base
	expand.Volume = 2000
	rec := Recommend(expand, model.ModeSwing)
	if rec.Score != 1 {
		t.Errorf("expansion: expected score 1, got %d", rec.Score)
	}
	found := false
	for _, r := range rec.Reasons {
		if strings.Contains(r, "量能放大") && strings.Contains(r, "2.00×") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected expansion reason with ratio, got %v", rec.Reasons)
	}

	weak := base
	weak.Volume = 500
	rec = Recommend(weak, model.ModeSwing)
	if rec.Score != -1 {
		t.Errorf("weak volume: expected score -1, got %d", rec.Score)
	}

	// Without a baseline the rule never fires.
	noBase := expand
	noBase.HasVolumeBase = false
	rec = Recommend(noBase, model.ModeSwing)
	if rec.Score != 0 {
		t.Errorf("no baseline: expected score 0, got %d", rec.Score)
	}
}

func TestRecommend_RangePosition(t *testing.T) {
	nearHigh := model.Snapshot{
		Price:     198,
		FastEMA:   200,
		SlowEMA:   195,
		RSI:       50,
		RangeLow:  100,
		RangeHigh: 200,
	}
	rec := Recommend(nearHigh, model.ModeSwing)
	if rec.Score != -1 {
		t.Errorf("near high: expected score -1, got %d", rec.Score)
	}

	nearLow := model.Snapshot{
		Price:     102,
		FastEMA:   100,
		SlowEMA:   105,
		RSI:       50,
		RangeLow:  100,
		RangeHigh: 200,
	}
	rec = Recommend(nearLow, model.ModeSwing)
	if rec.Score != 1 {
		t.Errorf("near low: expected score 1, got %d", rec.Score)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	snap := model.Snapshot{
		Price:         110,
		FastEMA:       100,
		SlowEMA:       90,
		RSI:           30,
		Volume:        3000,
		VolumeBase:    1000,
		HasVolumeBase: true,
		RangeLow:      100,
		RangeHigh:     110,
	}
	first := Recommend(snap, model.ModeShort)
	second := Recommend(snap, model.ModeShort)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %+v vs %+v", first, second)
	}
	if len(first.Reasons) > 4 {
		t.Errorf("expected at most 4 reasons, got %d", len(first.Reasons))
	}
}

func TestRecommend_RulesPartiallyCancel(t *testing.T) {
	// Bullish trend at the top of the range: +2 and -1 sum to +1 → hold.
	snap := model.Snapshot{
		Price:     110,
		FastEMA:   105,
		SlowEMA:   100,
		RSI:       50,
		RangeLow:  50,
		RangeHigh: 111,
	}
	rec := Recommend(snap, model.ModeSwing)
	if rec.Score != 1 {
		t.Errorf("expected score 1, got %d", rec.Score)
	}
	if rec.Action != model.ActionHold {
		t.Errorf("expected hold, got %s", rec.Action)
	}
}

func TestInsufficientRecommendation(t *testing.T) {
	rec := InsufficientRecommendation(50)
	if rec.Action != model.ActionHold {
		t.Errorf("expected hold, got %s", rec.Action)
	}
	if len(rec.Reasons) != 1 || !strings.Contains(rec.Reasons[0], "50") {
		t.Errorf("expected insufficient-data reason naming the bar count, got %v", rec.Reasons)
	}
}
