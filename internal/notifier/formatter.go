package notifier

import (
	"fmt"
	"strings"

	"HKStockBot/internal/model"
)

// MaxSummaryLen is the platform's maximum message size in characters.
const MaxSummaryLen = 3500

// NoDataMessage replaces the whole summary when no symbol produced data.
const NoDataMessage = "查無有效數據，請確認代碼或稍後再試。"

const (
	disclaimer        = "— 本訊息僅供參考，非投資建議 —"
	changePlaceholder = "---"
)

// BuildSummary composes the multi-symbol report: header with effective
// lookback and mode, one line per requested ticker in request order, footer
// disclaimer. Symbols without data render a placeholder line. The result is
// hard-truncated to MaxSummaryLen as a last-resort safety net.
func BuildSummary(reports []model.SymbolReport, days int, mode model.Mode) string {
	anyData := false
	for _, r := range reports {
		if r.HasData {
			anyData = true
			break
		}
	}
	if !anyData {
		return NoDataMessage
	}

	if days < 60 {
		days = 60
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 期間：最近 %d 天｜模式：%s\n", days, mode.Label()))
	for _, r := range reports {
		if !r.HasData {
			b.WriteString(fmt.Sprintf("%s：無資料\n", r.Ticker))
			continue
		}
		chg := changePlaceholder
		if r.HasPrev && r.PrevClose != 0 {
			chg = fmt.Sprintf("%+.2f%%", (r.LastClose/r.PrevClose-1)*100)
		}
		b.WriteString(fmt.Sprintf("• %s %s｜收 HK$%.2f（日變%s）｜AI：%s（%s）\n",
			r.Ticker, r.Name, r.LastClose, chg, r.Rec.Action, r.Rec.ReasonText()))
	}
	b.WriteString(disclaimer)
	return Truncate(b.String(), MaxSummaryLen)
}

// Truncate cuts s to at most max characters without splitting a UTF-8
// sequence.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
