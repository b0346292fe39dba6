package collector

import (
	"context"
	"time"

	"HKStockBot/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	SeriesBySymbol map[model.Ticker]model.Series
	Names          map[model.Ticker]string
	Err            error

	FetchCalls int
}

func (m *MockFetcher) Name() string { return "mock" }

// FetchDailySeries serves configured series for the requested tickers. With
// no configured data it generates bars so every ticker resolves, mirroring a
// fully healthy gateway.
func (m *MockFetcher) FetchDailySeries(_ context.Context, tickers []model.Ticker, days int) (map[model.Ticker]model.Series, error) {
	m.FetchCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[model.Ticker]model.Series, len(tickers))
	for _, t := range tickers {
		if m.SeriesBySymbol != nil {
			if s, ok := m.SeriesBySymbol[t]; ok && len(s) > 0 {
				out[t] = s
			}
			continue
		}
		out[t] = GenerateBars(100, days, 0.001)
	}
	return out, nil
}

func (m *MockFetcher) LookupName(_ context.Context, t model.Ticker) string {
	if name, ok := m.Names[t]; ok {
		return name
	}
	return t.String()
}

// GenerateBars produces count synthetic daily bars whose closes drift by the
// given fraction per bar around basePrice.
func GenerateBars(basePrice float64, count int, drift float64) model.Series {
	bars := make(model.Series, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*drift)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
