package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/komsit37/pegy/pkg/pegy/types"
)

// symsRenderer prints surviving tickers as a single comma-separated line,
// ranked order preserved, for piping into other tools.
type symsRenderer struct{}

func NewSymsRenderer() Renderer {
	return symsRenderer{}
}

func (symsRenderer) Render(w io.Writer, rows []types.Row, _ Options) error {
	symbols := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Err != nil {
			continue
		}
		sym := strings.TrimSpace(r.Ticker)
		if sym == "" {
			continue
		}
		symbols = append(symbols, sym)
	}
	_, err := fmt.Fprintln(w, strings.Join(symbols, ","))
	return err
}
