package screen

import (
	"sort"

	"github.com/komsit37/pegy/pkg/pegy/types"
)

// Run derives the screen columns for every fetched row, applies the
// configured filters, and ranks the survivors by (PEGY, Ticker) ascending
// with absent-PEGY rows last. Fetched records are not mutated; each row is
// a derived copy, so re-running with a different config is safe.
func Run(fetched []types.Fundamentals, cfg types.ScreenConfig) []types.Row {
	rows := make([]types.Row, 0, len(fetched))
	for _, f := range fetched {
		rows = append(rows, derive(f, cfg))
	}
	rows = filter(rows, cfg)
	rank(rows)
	return rows
}

// derive computes PEUsed, GrowthUsed and PEGY for one record. Error rows
// pass through untouched so they can still appear in unfiltered output.
func derive(f types.Fundamentals, cfg types.ScreenConfig) types.Row {
	r := types.Row{Fundamentals: f}
	if f.Err != nil {
		return r
	}

	if cfg.PEType == types.PETrailing {
		r.PEUsed = f.TrailingPE
	} else {
		r.PEUsed = f.ForwardPE
	}

	switch cfg.GrowthSource {
	case types.GrowthManual:
		r.GrowthUsed = cfg.ManualGrowthPct
	default:
		if f.AnalystGrowthPct != nil {
			r.GrowthUsed = *f.AnalystGrowthPct
		} else {
			r.GrowthUsed = cfg.ManualGrowthPct
		}
	}

	// Negative operands cannot feed the ratio.
	if r.GrowthUsed < 0 {
		r.GrowthUsed = 0
	}
	if r.DividendPct < 0 {
		r.DividendPct = 0
	}

	// A zero denominator leaves PEGY absent rather than dividing.
	if r.PEUsed != nil {
		if denom := r.GrowthUsed + r.DividendPct; denom != 0 {
			pegy := *r.PEUsed / denom
			r.PEGY = &pegy
		}
	}
	return r
}

// filter applies the dividend and PEGY thresholds. A threshold of 0 leaves
// that filter off; an absent PEGY fails an active PEGY filter.
func filter(rows []types.Row, cfg types.ScreenConfig) []types.Row {
	out := make([]types.Row, 0, len(rows))
	for _, r := range rows {
		if cfg.MinDividendPct > 0 && r.DividendPct < cfg.MinDividendPct {
			continue
		}
		if cfg.MaxPEGY > 0 && (r.PEGY == nil || *r.PEGY > cfg.MaxPEGY) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func rank(rows []types.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].PEGY, rows[j].PEGY
		if a == nil || b == nil {
			if a == nil && b == nil {
				return rows[i].Ticker < rows[j].Ticker
			}
			return b == nil
		}
		if *a != *b {
			return *a < *b
		}
		return rows[i].Ticker < rows[j].Ticker
	})
}
