package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/pegy/pkg/pegy/types"
)

type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, rows []types.Row, opts Options) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false

	hdr := make(table.Row, len(Columns))
	for i, c := range Columns {
		hdr[i] = strings.ToUpper(c)
	}
	tw.AppendHeader(hdr)

	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(Columns))
	for i, c := range Columns {
		cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
		switch c {
		case "Price", "PE Used", "Growth % Used", "Dividend %", "PEGY":
			cfg.Align = text.AlignRight
			cfg.AlignHeader = text.AlignRight
		}
		cfgs = append(cfgs, cfg)
	}
	tw.SetColumnConfigs(cfgs)

	for _, row := range rows {
		tw.AppendRow(tableRow(row, opts))
	}
	tw.Render()
	return nil
}

func tableRow(r types.Row, opts Options) table.Row {
	name := r.Name
	if r.Err != nil {
		name = "ERR: " + r.Err.Error()
		if opts.Color {
			name = text.Colors{text.FgRed}.Sprint(name)
		}
	}
	pegy := cell(r.PEGY)
	if opts.Color && r.PEGY != nil {
		// Lower is better; under 1.0 is the classic value threshold.
		if *r.PEGY < 1 {
			pegy = text.Colors{text.FgGreen}.Sprint(pegy)
		}
	}
	growth, dividend := "", ""
	if r.Err == nil {
		growth = fmt.Sprintf("%.2f", r.GrowthUsed)
		dividend = fmt.Sprintf("%.2f", r.DividendPct)
	}
	return table.Row{
		r.Ticker,
		name,
		r.Sector,
		cell(r.Price),
		cell(r.PEUsed),
		growth,
		dividend,
		pegy,
	}
}
