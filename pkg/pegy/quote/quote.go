package quote

import (
	"context"

	"github.com/komsit37/pegy/pkg/pegy/types"
)

// Service fetches the screening fundamentals for one symbol.
type Service interface {
	Fundamentals(ctx context.Context, sym string) (types.Fundamentals, error)
}

// FetchBatch fetches each symbol in input order. A failing symbol becomes a
// row carrying only the ticker and its error; the rest of the batch
// continues. The result always has one row per input symbol.
func FetchBatch(ctx context.Context, svc Service, syms []string) []types.Fundamentals {
	rows := make([]types.Fundamentals, 0, len(syms))
	for _, sym := range syms {
		f, err := svc.Fundamentals(ctx, sym)
		if err != nil {
			rows = append(rows, types.Fundamentals{Ticker: sym, Err: err})
			continue
		}
		rows = append(rows, f)
	}
	return rows
}
