package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/komsit37/pegy/pkg/pegy/types"
)

// CSVRenderer writes the screen as comma-separated values: a header row in
// presentation order, then one row per ticker.
type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer { return &CSVRenderer{} }

func (CSVRenderer) Render(w io.Writer, rows []types.Row, _ Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(csvRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(r types.Row) []string {
	if r.Err != nil {
		// Failed lookups export the symbol and the error text only.
		return []string{r.Ticker, r.Err.Error(), "", "", "", "", "", ""}
	}
	return []string{
		r.Ticker,
		r.Name,
		r.Sector,
		cell(r.Price),
		cell(r.PEUsed),
		fmt.Sprintf("%.2f", r.GrowthUsed),
		fmt.Sprintf("%.2f", r.DividendPct),
		cell(r.PEGY),
	}
}
