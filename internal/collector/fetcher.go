package collector

import (
	"context"

	"HKStockBot/internal/model"
)

// Fetcher defines the market data gateway consumed by the pipeline.
type Fetcher interface {
	// FetchDailySeries returns daily bars per ticker in one batch. Tickers
	// without usable data are simply absent from the result; the caller
	// treats a missing key as "no data", not as a fatal error.
	FetchDailySeries(ctx context.Context, tickers []model.Ticker, days int) (map[model.Ticker]model.Series, error)

	// LookupName resolves a display name. Best effort: any failure falls
	// back to the ticker string.
	LookupName(ctx context.Context, t model.Ticker) string

	Name() string
}
