// Package strategy maps indicator snapshots to discrete recommendations.
package strategy

import (
	"fmt"

	"HKStockBot/internal/model"
)

const (
	rsiLowThreshold   = 35.0
	rsiHighThreshold  = 65.0
	volumeExpandRatio = 1.5
	volumeWeakRatio   = 0.7
	rangeHighPos      = 0.85
	rangeLowPos       = 0.15
	rangeEpsilon      = 1e-9

	buyThreshold  = 2
	sellThreshold = -2
	maxReasons    = 4
)

// Recommend applies the four-rule integer score to the latest indicator
// values. Rules are additive and evaluated in fixed order: trend, RSI,
// volume confirmation, range position. Co-occurring rules may partially
// cancel; no precedence beyond summation exists. The trend rule always
// contributes a reason, even when zero-valued, so the output stays
// interpretable. Pure function: identical input yields identical output.
func Recommend(snap model.Snapshot, mode model.Mode) model.Recommendation {
	p := mode.Params()
	score := 0
	reasons := make([]string, 0, maxReasons)

	// 1. Trend
	switch {
	case snap.Price > snap.FastEMA && snap.FastEMA > snap.SlowEMA:
		score += 2
		reasons = append(reasons, fmt.Sprintf("價格>EMA%d>EMA%d（多頭）", p.FastEMA, p.SlowEMA))
	case snap.Price < snap.FastEMA && snap.FastEMA < snap.SlowEMA:
		score -= 2
		reasons = append(reasons, fmt.Sprintf("價格<EMA%d<EMA%d（空頭）", p.FastEMA, p.SlowEMA))
	default:
		reasons = append(reasons, "均線訊號混合")
	}

	// 2. Momentum
	if snap.RSI < rsiLowThreshold {
		score++
		reasons = append(reasons, fmt.Sprintf("RSI=%.1f 偏低", snap.RSI))
	} else if snap.RSI > rsiHighThreshold {
		score--
		reasons = append(reasons, fmt.Sprintf("RSI=%.1f 偏高", snap.RSI))
	}

	// 3. Volume confirmation
	if snap.HasVolumeBase && snap.VolumeBase > 0 {
		base := snap.VolumeBase
		if base < 1 {
			base = 1
		}
		ratio := snap.Volume / base
		if ratio >= volumeExpandRatio {
			score++
			reasons = append(reasons, fmt.Sprintf("量能放大（%.2f×）", ratio))
		} else if ratio <= volumeWeakRatio {
			score--
			reasons = append(reasons, fmt.Sprintf("量能偏弱（%.2f×）", ratio))
		}
	}

	// 4. Range position
	pos := (snap.Price - snap.RangeLow) / (snap.RangeHigh - snap.RangeLow + rangeEpsilon)
	if pos >= rangeHighPos {
		score--
		reasons = append(reasons, "接近區間高位")
	} else if pos <= rangeLowPos {
		score++
		reasons = append(reasons, "接近區間低位")
	}

	action := model.ActionHold
	if score >= buyThreshold {
		action = model.ActionBuy
	} else if score <= sellThreshold {
		action = model.ActionSell
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return model.Recommendation{Action: action, Score: score, Reasons: reasons}
}

// InsufficientRecommendation is the fixed result rendered when a series has
// fewer bars than the mode requires.
func InsufficientRecommendation(minBars int) model.Recommendation {
	return model.Recommendation{
		Action:  model.ActionHold,
		Reasons: []string{fmt.Sprintf("資料不足（<%d 筆）", minBars)},
	}
}
