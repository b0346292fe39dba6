// Package symbol turns free-form text into normalized tickers.
package symbol

import (
	"regexp"

	"HKStockBot/internal/model"
)

// MaxSymbols caps how many distinct tickers one command may request.
const MaxSymbols = 5

// Word-boundary anchoring rejects digit runs embedded in longer numbers such
// as phone numbers.
var codePattern = regexp.MustCompile(`\b(\d{1,5})\b`)

// Extract scans text for standalone 1-5 digit codes and returns their
// canonical tickers, deduplicated in first-seen order. Extraction stops once
// max distinct tickers are collected; later duplicates and excess matches are
// silently ignored. An empty result is not an error.
func Extract(text string, max int) []model.Ticker {
	if max <= 0 {
		max = MaxSymbols
	}
	tickers := make([]model.Ticker, 0, max)
	seen := make(map[model.Ticker]bool, max)
	for _, cand := range codePattern.FindAllString(text, -1) {
		t, ok := model.NormalizeTicker(cand)
		if !ok || seen[t] {
			continue
		}
		seen[t] = true
		tickers = append(tickers, t)
		if len(tickers) >= max {
			break
		}
	}
	return tickers
}
