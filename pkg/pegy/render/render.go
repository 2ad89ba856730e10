package render

import (
	"fmt"
	"io"
	"math"

	"github.com/komsit37/pegy/pkg/pegy/types"
)

// Columns is the fixed presentation order for screen output. CSV export
// uses the same order with no index column.
var Columns = []string{"Ticker", "Name", "Sector", "Price", "PE Used", "Growth % Used", "Dividend %", "PEGY"}

// Renderer renders ranked screen rows to an output writer.
type Renderer interface {
	Render(w io.Writer, rows []types.Row, opts Options) error
}

type Options struct {
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
}

// cell formats an optional value for display, two decimals, empty when
// absent. Rounding happens here only; ranked values stay exact.
func cell(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
