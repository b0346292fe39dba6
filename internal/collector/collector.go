// Package collector batches market data retrieval and indicator computation.
package collector

import (
	"context"
	"log"

	"HKStockBot/internal/calculator"
	"HKStockBot/internal/model"
)

// minFetchDays guarantees enough history for the longest-window mode.
const minFetchDays = 60

// Analysis is the per-symbol outcome of one collection pass.
type Analysis struct {
	Series     model.Series
	Snapshot   model.Snapshot
	Sufficient bool
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches all tickers in a single gateway call and computes
// indicators for every series that came back. Tickers the gateway omitted
// stay absent from the result; a failed fetch degrades to an empty result
// rather than an error, so the caller renders "no data" lines.
func (c *Collector) Collect(ctx context.Context, tickers []model.Ticker, params model.RequestParams) map[model.Ticker]Analysis {
	if len(tickers) == 0 {
		return nil
	}
	days := params.Days
	if days < minFetchDays {
		days = minFetchDays
	}
	seriesBySym, err := c.Fetcher.FetchDailySeries(ctx, tickers, days)
	if err != nil {
		log.Printf("[WARN] fetch daily series: %v", err)
		return nil
	}
	out := make(map[model.Ticker]Analysis, len(seriesBySym))
	for t, s := range seriesBySym {
		if len(s) == 0 {
			continue
		}
		snap, ok := calculator.Compute(s, params.Mode)
		out[t] = Analysis{Series: s, Snapshot: snap, Sufficient: ok}
	}
	return out
}

// LookupName resolves a display name through the gateway, best effort.
func (c *Collector) LookupName(ctx context.Context, t model.Ticker) string {
	return c.Fetcher.LookupName(ctx, t)
}
