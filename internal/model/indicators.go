package model

// Mode selects the indicator parameter set for an analysis.
type Mode string

const (
	ModeShort    Mode = "short"
	ModeSwing    Mode = "swing"
	ModePosition Mode = "position"
)

// ParseMode maps a mode token to its Mode, defaulting to swing.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeShort, ModeSwing, ModePosition:
		return Mode(s)
	}
	return ModeSwing
}

// Label returns the localized display name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeShort:
		return "短線"
	case ModePosition:
		return "中長線"
	}
	return "波段"
}

// ModeParams are the indicator windows associated with a mode.
type ModeParams struct {
	FastEMA      int
	SlowEMA      int
	RSIPeriod    int
	VolumeWindow int
	MinBars      int
}

var modeParams = map[Mode]ModeParams{
	ModeShort:    {FastEMA: 10, SlowEMA: 20, RSIPeriod: 7, VolumeWindow: 10, MinBars: 30},
	ModeSwing:    {FastEMA: 20, SlowEMA: 50, RSIPeriod: 14, VolumeWindow: 20, MinBars: 50},
	ModePosition: {FastEMA: 50, SlowEMA: 100, RSIPeriod: 14, VolumeWindow: 50, MinBars: 80},
}

// Params returns the parameter set for the mode, falling back to swing for
// an unknown value.
func (m Mode) Params() ModeParams {
	if p, ok := modeParams[m]; ok {
		return p
	}
	return modeParams[ModeSwing]
}

// Snapshot holds the last-row indicator values consumed by scoring. Earlier
// rows of the derived series exist only to warm up the recursive smoothing.
type Snapshot struct {
	Price   float64
	FastEMA float64
	SlowEMA float64
	RSI     float64

	Volume        float64
	VolumeBase    float64
	HasVolumeBase bool

	// Close range over the full fetched window.
	RangeLow  float64
	RangeHigh float64
}
