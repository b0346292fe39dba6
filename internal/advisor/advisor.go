// Package advisor parses inbound commands and runs the analysis pipeline.
package advisor

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"HKStockBot/internal/collector"
	"HKStockBot/internal/model"
	"HKStockBot/internal/notifier"
	"HKStockBot/internal/strategy"
	"HKStockBot/internal/symbol"
)

// HelpText explains the command grammar to end users.
const HelpText = "🤖 使用說明：\n" +
	"• 直接輸入代碼（可多隻）：例如 9988, 06618\n" +
	"• 可加參數：mode=short|swing|position、days=60/90/120/240…\n" +
	"  範例：9988 6618 mode=swing days=120\n" +
	"• 輸入 help 取得說明\n" +
	"— 本服務僅供教育參考，非投資建議 —"

const (
	// PromptMessage answers an empty command.
	PromptMessage = "請輸入港股代碼，或輸入 help 查看說明。"
	// NoCodesMessage answers a command with no valid codes.
	NoCodesMessage = "沒有偵測到有效代碼，請輸入如：9988, 06618（可加 mode= 與 days=）"

	pongMessage = "pong 👋 服務運作中"

	minDays     = 60
	maxDays     = 1000
	defaultDays = 90
)

var (
	modePattern = regexp.MustCompile(`(?i)mode\s*=\s*(short|swing|position)`)
	daysPattern = regexp.MustCompile(`(?i)days\s*=\s*(\d{1,4})`)
)

// CommandHandler turns one inbound text command into a reply. Both webhook
// transports feed this single interface, so the pipeline never knows which
// transport produced the command.
type CommandHandler func(ctx context.Context, text string) string

// IsMenuCommand reports whether the text is one of the reserved help/menu
// keywords.
func IsMenuCommand(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "help", "menu", "？", "h":
		return true
	}
	return false
}

// Advisor runs the full stateless pipeline for inbound commands. Every
// entity it creates lives and dies within a single invocation.
type Advisor struct {
	Collector   *collector.Collector
	DefaultDays int
	MaxSymbols  int
}

// New creates an Advisor; zero defaults resolve to 90 days and 5 symbols.
func New(col *collector.Collector, days, maxSymbols int) *Advisor {
	if days == 0 {
		days = defaultDays
	}
	if maxSymbols <= 0 {
		maxSymbols = symbol.MaxSymbols
	}
	return &Advisor{Collector: col, DefaultDays: days, MaxSymbols: maxSymbols}
}

// ParseParams extracts mode and days from a command, applying defaults and
// clamping days to [60, 1000]. Params are immutable once parsed.
func (a *Advisor) ParseParams(text string) model.RequestParams {
	mode := model.ModeSwing
	if m := modePattern.FindStringSubmatch(text); m != nil {
		mode = model.ParseMode(strings.ToLower(m[1]))
	}
	days := a.DefaultDays
	if d := daysPattern.FindStringSubmatch(text); d != nil {
		if n, err := strconv.Atoi(d[1]); err == nil {
			days = n
		}
	}
	if days < minDays {
		days = minDays
	}
	if days > maxDays {
		days = maxDays
	}
	return model.RequestParams{Mode: mode, Days: days}
}

// HandleCommand implements CommandHandler: extract symbols, batch-fetch,
// compute, score, and render the bounded summary. All recoverable conditions
// are absorbed here and converted to user-facing text.
func (a *Advisor) HandleCommand(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return PromptMessage
	}
	if IsMenuCommand(text) {
		return HelpText
	}
	switch strings.ToLower(text) {
	case "ping", "hi", "hello":
		return pongMessage
	}

	params := a.ParseParams(text)
	tickers := symbol.Extract(text, a.MaxSymbols)
	if len(tickers) == 0 {
		return NoCodesMessage
	}

	analyses := a.Collector.Collect(ctx, tickers, params)
	reports := make([]model.SymbolReport, 0, len(tickers))
	for _, t := range tickers {
		an, ok := analyses[t]
		if !ok || len(an.Series) == 0 {
			reports = append(reports, model.SymbolReport{Ticker: t})
			continue
		}
		rep := model.SymbolReport{
			Ticker:    t,
			Name:      a.Collector.LookupName(ctx, t),
			HasData:   true,
			LastClose: an.Series.LastClose(),
		}
		if n := len(an.Series); n >= 2 {
			rep.PrevClose = an.Series[n-2].Close
			rep.HasPrev = true
		}
		if an.Sufficient {
			rep.Rec = strategy.Recommend(an.Snapshot, params.Mode)
		} else {
			rep.Rec = strategy.InsufficientRecommendation(params.Mode.Params().MinBars)
		}
		reports = append(reports, rep)
	}
	return notifier.BuildSummary(reports, params.Days, params.Mode)
}
