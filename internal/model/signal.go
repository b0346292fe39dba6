package model

import "strings"

// Action is the discrete recommendation label.
type Action string

const (
	ActionBuy  Action = "買入"
	ActionSell Action = "賣出"
	ActionHold Action = "持有"
)

// Recommendation is the scored advice for one symbol. It is created fresh per
// series and never mutated afterwards.
type Recommendation struct {
	Action  Action
	Score   int
	Reasons []string
}

// ReasonText joins the reasons for display.
func (r Recommendation) ReasonText() string {
	return strings.Join(r.Reasons, "；")
}

// RequestParams are the per-command options parsed from free text.
type RequestParams struct {
	Mode Mode
	Days int
}

// SymbolReport is one symbol's entry in the final summary, in request order.
type SymbolReport struct {
	Ticker  Ticker
	Name    string
	HasData bool

	LastClose float64
	PrevClose float64
	HasPrev   bool

	Rec Recommendation
}
