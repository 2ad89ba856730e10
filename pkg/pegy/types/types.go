package types

// PEType selects which price/earnings column feeds the PEGY ratio.
type PEType string

const (
	PEForward  PEType = "forward"
	PETrailing PEType = "trailing"
)

// GrowthSource selects where the growth percentage comes from.
type GrowthSource string

const (
	// GrowthAnalyst uses the analyst 5-year estimate, falling back to the
	// manual percentage where no estimate is available.
	GrowthAnalyst GrowthSource = "analyst"
	// GrowthManual uses the manual percentage for every row.
	GrowthManual GrowthSource = "manual"
)

// ScreenConfig is one screen invocation's settings. A threshold of 0
// disables the corresponding filter.
type ScreenConfig struct {
	Tickers         []string
	PEType          PEType
	GrowthSource    GrowthSource
	ManualGrowthPct float64
	MinDividendPct  float64
	MaxPEGY         float64
}

// Fundamentals is one provider lookup result. Fields the provider may omit
// are pointers and stay nil when missing; DividendPct is a true zero when
// the provider reports no yield. Err is set when the lookup for this symbol
// failed entirely, in which case no other field except Ticker is populated.
type Fundamentals struct {
	Ticker           string
	Name             string
	Sector           string
	Price            *float64
	TrailingPE       *float64
	ForwardPE        *float64
	DividendPct      float64
	AnalystGrowthPct *float64
	Err              error
}

// Row is a Fundamentals record with the derived screen columns. GrowthUsed
// and DividendPct are always concrete after derivation (manual fallback and
// clamping guarantee a value); PEUsed and PEGY stay nil when the inputs are
// missing.
type Row struct {
	Fundamentals
	PEUsed     *float64
	GrowthUsed float64
	PEGY       *float64
}
