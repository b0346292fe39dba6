package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"HKStockBot/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy
// support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooQuote is the response structure from the Yahoo Finance quote API.
type yahooQuote struct {
	QuoteResponse struct {
		Result []struct {
			ShortName   string `json:"shortName"`
			LongName    string `json:"longName"`
			DisplayName string `json:"displayName"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// floatAt reads a numeric cell from a chart column, tolerating null cells and
// columns shorter than the timestamp axis.
func floatAt(col []interface{}, i int) (float64, bool) {
	if i >= len(col) {
		return 0, false
	}
	n, ok := col[i].(float64)
	return n, ok
}

// FetchDailySeries fetches all tickers concurrently; per-symbol failures are
// logged and the symbol omitted, so partial results degrade gracefully.
func (f *YahooFetcher) FetchDailySeries(ctx context.Context, tickers []model.Ticker, days int) (map[model.Ticker]model.Series, error) {
	out := make(map[model.Ticker]model.Series, len(tickers))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, t := range tickers {
		wg.Add(1)
		go func(t model.Ticker) {
			defer wg.Done()
			series, err := f.fetchDaily(ctx, t, days)
			if err != nil {
				log.Printf("[WARN] yahoo fetch %s: %v", t, err)
				return
			}
			if len(series) == 0 {
				return
			}
			mu.Lock()
			out[t] = series
			mu.Unlock()
		}(t)
	}
	wg.Wait()
	return out, nil
}

func (f *YahooFetcher) fetchDaily(ctx context.Context, t model.Ticker, days int) (model.Series, error) {
	bars, err := f.fetchChart(ctx, t, "1d", rangeForDays(days))
	if err != nil {
		return nil, err
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// rangeForDays picks the smallest Yahoo chart range covering the lookback.
func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}

func (f *YahooFetcher) fetchChart(ctx context.Context, t model.Ticker, interval, rng string) (model.Series, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(t.String()), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	return decodeChartBars(body)
}

// decodeChartBars turns a chart API payload into a chronological series.
// Yahoo occasionally returns ragged payloads where the quote columns are
// shorter than the timestamp axis; rows without a numeric close are dropped,
// as are null bars (holidays) and duplicate timestamps.
func decodeChartBars(body []byte) (model.Series, error) {
	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data")
	}
	quote := result.Indicators.Quote[0]

	bars := make(model.Series, 0, len(result.Timestamp))
	seen := make(map[int64]bool, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c, ok := floatAt(quote.Close, i)
		if !ok || seen[ts] {
			continue
		}
		o, _ := floatAt(quote.Open, i)
		h, _ := floatAt(quote.High, i)
		l, _ := floatAt(quote.Low, i)
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // null bars (holidays etc.)
		}
		v, _ := floatAt(quote.Volume, i)
		seen[ts] = true
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// LookupName queries the quote API for a display name and falls back to the
// ticker string on any failure. It never returns an error to the caller.
func (f *YahooFetcher) LookupName(ctx context.Context, t model.Ticker) string {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v7/finance/quote?symbols=%s&lang=zh-Hant-TW&region=TW",
		url.QueryEscape(t.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return t.String()
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return t.String()
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return t.String()
	}

	var quote yahooQuote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return t.String()
	}
	if len(quote.QuoteResponse.Result) == 0 {
		return t.String()
	}
	r := quote.QuoteResponse.Result[0]
	for _, name := range []string{r.ShortName, r.LongName, r.DisplayName} {
		if name != "" {
			return name
		}
	}
	return t.String()
}
