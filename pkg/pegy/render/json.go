package render

import (
	"encoding/json"
	"io"

	"github.com/komsit37/pegy/pkg/pegy/types"
)

// jsonRow is the output shape for JSONRenderer. Absent values are omitted
// rather than serialized as null.
type jsonRow struct {
	Ticker      string   `json:"ticker"`
	Name        string   `json:"name,omitempty"`
	Sector      string   `json:"sector,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	PEUsed      *float64 `json:"pe_used,omitempty"`
	GrowthUsed  *float64 `json:"growth_pct_used,omitempty"`
	DividendPct *float64 `json:"dividend_pct,omitempty"`
	PEGY        *float64 `json:"pegy,omitempty"`
	Error       string   `json:"error,omitempty"`
}

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, rows []types.Row, opts Options) error {
	out := make([]jsonRow, 0, len(rows))
	for _, row := range rows {
		jr := jsonRow{Ticker: row.Ticker}
		if row.Err != nil {
			jr.Error = row.Err.Error()
			out = append(out, jr)
			continue
		}
		jr.Name = row.Name
		jr.Sector = row.Sector
		jr.Price = rounded(row.Price)
		jr.PEUsed = rounded(row.PEUsed)
		jr.GrowthUsed = rounded(&row.GrowthUsed)
		jr.DividendPct = rounded(&row.DividendPct)
		jr.PEGY = rounded(row.PEGY)
		out = append(out, jr)
	}
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func rounded(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}
