package screen

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/pegy/pkg/pegy/quote"
	"github.com/komsit37/pegy/pkg/pegy/types"
)

func fp(v float64) *float64 { return &v }

func cfg() types.ScreenConfig {
	return types.ScreenConfig{
		PEType:          types.PEForward,
		GrowthSource:    types.GrowthAnalyst,
		ManualGrowthPct: 10,
	}
}

func TestPESelection(t *testing.T) {
	f := types.Fundamentals{Ticker: "A", ForwardPE: fp(20), TrailingPE: fp(30), DividendPct: 1}

	c := cfg()
	rows := Run([]types.Fundamentals{f}, c)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].PEUsed)
	assert.Equal(t, 20.0, *rows[0].PEUsed)

	c.PEType = types.PETrailing
	rows = Run([]types.Fundamentals{f}, c)
	require.NotNil(t, rows[0].PEUsed)
	assert.Equal(t, 30.0, *rows[0].PEUsed)
}

func TestPESelectionAbsentStaysAbsent(t *testing.T) {
	f := types.Fundamentals{Ticker: "A", TrailingPE: fp(30), DividendPct: 1}
	rows := Run([]types.Fundamentals{f}, cfg())
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].PEUsed)
	assert.Nil(t, rows[0].PEGY)
}

func TestGrowthManualFallback(t *testing.T) {
	c := cfg()
	c.ManualGrowthPct = 7.5

	withEstimate := types.Fundamentals{Ticker: "A", ForwardPE: fp(20), AnalystGrowthPct: fp(12)}
	without := types.Fundamentals{Ticker: "B", ForwardPE: fp(20)}
	rows := Run([]types.Fundamentals{withEstimate, without}, c)
	require.Len(t, rows, 2)

	byTicker := map[string]types.Row{}
	for _, r := range rows {
		byTicker[r.Ticker] = r
	}
	assert.Equal(t, 12.0, byTicker["A"].GrowthUsed)
	assert.Equal(t, 7.5, byTicker["B"].GrowthUsed, "absent estimate must fall back to the manual percentage")
}

func TestGrowthManualOnly(t *testing.T) {
	c := cfg()
	c.GrowthSource = types.GrowthManual
	c.ManualGrowthPct = 5

	f := types.Fundamentals{Ticker: "A", ForwardPE: fp(20), AnalystGrowthPct: fp(12)}
	rows := Run([]types.Fundamentals{f}, c)
	require.Len(t, rows, 1)
	assert.Equal(t, 5.0, rows[0].GrowthUsed, "manual-only ignores the analyst estimate")
}

func TestClampingNegativeOperands(t *testing.T) {
	c := cfg()
	c.GrowthSource = types.GrowthManual
	c.ManualGrowthPct = 0

	f := types.Fundamentals{Ticker: "A", ForwardPE: fp(20), DividendPct: -3, AnalystGrowthPct: fp(-8)}
	rows := Run([]types.Fundamentals{f}, c)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].GrowthUsed)
	assert.Equal(t, 0.0, rows[0].DividendPct)
	assert.Nil(t, rows[0].PEGY, "zero denominator leaves PEGY absent")
}

func TestDivideByZeroGuard(t *testing.T) {
	c := cfg()
	c.GrowthSource = types.GrowthManual
	c.ManualGrowthPct = 0

	f := types.Fundamentals{Ticker: "A", ForwardPE: fp(20), DividendPct: 0}
	rows := Run([]types.Fundamentals{f}, c)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].PEGY)
}

func TestPEGYFilter(t *testing.T) {
	c := cfg()
	c.GrowthSource = types.GrowthManual
	c.ManualGrowthPct = 10
	c.MaxPEGY = 1.0

	// PEGY: 8/10 = 0.8, 12/10 = 1.2, absent (no PE).
	fetched := []types.Fundamentals{
		{Ticker: "A", ForwardPE: fp(8)},
		{Ticker: "B", ForwardPE: fp(12)},
		{Ticker: "C"},
	}
	rows := Run(fetched, c)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Ticker)
}

func TestZeroThresholdDisablesFilters(t *testing.T) {
	c := cfg()
	c.GrowthSource = types.GrowthManual
	c.ManualGrowthPct = 10
	c.MaxPEGY = 0
	c.MinDividendPct = 0

	fetched := []types.Fundamentals{
		{Ticker: "A", ForwardPE: fp(100)}, // PEGY 10, would fail any active filter
		{Ticker: "B"},                     // absent PEGY
	}
	rows := Run(fetched, c)
	assert.Len(t, rows, 2)
}

func TestDividendFilter(t *testing.T) {
	c := cfg()
	c.GrowthSource = types.GrowthManual
	c.ManualGrowthPct = 10
	c.MinDividendPct = 2

	fetched := []types.Fundamentals{
		{Ticker: "A", ForwardPE: fp(10), DividendPct: 3},
		{Ticker: "B", ForwardPE: fp(10), DividendPct: 1},
		{Ticker: "C", ForwardPE: fp(10)}, // true zero yield
	}
	rows := Run(fetched, c)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Ticker)
}

func TestRanking(t *testing.T) {
	c := cfg()
	c.GrowthSource = types.GrowthManual
	c.ManualGrowthPct = 10

	// PEGY: Z=1.5, B=0.9, C=absent, A=0.9.
	fetched := []types.Fundamentals{
		{Ticker: "Z", ForwardPE: fp(15)},
		{Ticker: "B", ForwardPE: fp(9)},
		{Ticker: "C"},
		{Ticker: "A", ForwardPE: fp(9)},
	}
	rows := Run(fetched, c)
	require.Len(t, rows, 4)

	order := make([]string, len(rows))
	for i, r := range rows {
		order[i] = r.Ticker
	}
	assert.Equal(t, []string{"A", "B", "Z", "C"}, order)
	assert.Nil(t, rows[3].PEGY, "absent PEGY sorts last")
}

func TestErrorRowsSortLastAndFailFilters(t *testing.T) {
	c := cfg()
	c.GrowthSource = types.GrowthManual
	c.ManualGrowthPct = 10

	fetched := []types.Fundamentals{
		{Ticker: "B", Err: fmt.Errorf("lookup failed")},
		{Ticker: "A", ForwardPE: fp(9)},
	}
	rows := Run(fetched, c)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Ticker)
	assert.Equal(t, "B", rows[1].Ticker)

	c.MaxPEGY = 5
	rows = Run(fetched, c)
	require.Len(t, rows, 1, "an active PEGY filter drops error rows")
	assert.Equal(t, "A", rows[0].Ticker)
}

type stubService struct{ rows map[string]types.Fundamentals }

func (s stubService) Fundamentals(_ context.Context, sym string) (types.Fundamentals, error) {
	f, ok := s.rows[sym]
	if !ok {
		return types.Fundamentals{Ticker: sym}, fmt.Errorf("no data for %s", sym)
	}
	return f, nil
}

func TestEndToEndDuplicateTickers(t *testing.T) {
	svc := stubService{rows: map[string]types.Fundamentals{
		"AAPL": {Ticker: "AAPL", Name: "Apple Inc.", ForwardPE: fp(20), DividendPct: 2},
	}}
	fetched := quote.FetchBatch(context.Background(), svc, []string{"AAPL", "AAPL"})

	c := types.ScreenConfig{
		PEType:          types.PEForward,
		GrowthSource:    types.GrowthManual,
		ManualGrowthPct: 10,
		MaxPEGY:         2,
	}
	rows := Run(fetched, c)
	require.Len(t, rows, 2, "duplicate tickers screen independently")
	for _, r := range rows {
		require.NotNil(t, r.PEGY)
		assert.InDelta(t, 20.0/12.0, *r.PEGY, 1e-9)
	}
}
