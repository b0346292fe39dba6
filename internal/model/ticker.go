package model

import "strings"

// MarketSuffix is the canonical market code appended to every ticker.
const MarketSuffix = ".HK"

// Ticker is a normalized HK stock symbol, e.g. "0700.HK".
// Two tickers are equal iff their canonical strings match.
type Ticker string

func (t Ticker) String() string { return string(t) }

// NormalizeTicker validates a raw code and returns its canonical form.
// The input may carry an existing market suffix. Codes are zero-padded to at
// least 4 digits; a longer code is never truncated.
func NormalizeTicker(raw string) (Ticker, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	code = strings.TrimSuffix(code, MarketSuffix)
	if code == "" || len(code) > 5 {
		return "", false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	for len(code) < 4 {
		code = "0" + code
	}
	return Ticker(code + MarketSuffix), true
}
