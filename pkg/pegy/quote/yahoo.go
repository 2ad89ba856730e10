package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	yfgo "github.com/komsit37/yf-go"

	"github.com/komsit37/pegy/pkg/pegy/types"
)

// growthPeriod is the analyst-estimate horizon feeding the PEGY growth term.
const growthPeriod = "+5y"

// modules covers every field the screen reads in one quoteSummary call.
var modules = []yfgo.QuoteSummaryModule{
	yfgo.ModulePrice,
	yfgo.ModuleSummaryDetail,
	yfgo.ModuleFinancialData,
	yfgo.ModuleAssetProfile,
	yfgo.ModuleEarningsTrend,
}

// summary is a typed partial view over the raw quoteSummary payload. yf-go's
// QuoteSummaryTyped carries neither summaryDetail.forwardPE,
// financialData.currentPrice nor the earningsTrend module, so the screen
// decodes its own partial record; every field stays optional.
type summary struct {
	Price         *yfgo.PriceModule        `json:"price"`
	SummaryDetail *summaryDetail           `json:"summaryDetail"`
	FinancialData *financialData           `json:"financialData"`
	AssetProfile  *yfgo.AssetProfileModule `json:"assetProfile"`
	// Decoded lazily; a broken estimates table must not fail the record.
	EarningsTrend json.RawMessage `json:"earningsTrend"`
}

type summaryDetail struct {
	TrailingPE    yfgo.YNum `json:"trailingPE"`
	ForwardPE     yfgo.YNum `json:"forwardPE"`
	DividendYield yfgo.YNum `json:"dividendYield"`
}

type financialData struct {
	CurrentPrice yfgo.YNum `json:"currentPrice"`
}

type earningsTrend struct {
	Trend []trendEntry `json:"trend"`
}

type trendEntry struct {
	Period string    `json:"period"`
	Growth yfgo.YNum `json:"growth"`
}

// YFService implements Service using yf-go.
type YFService struct {
	client  *yfgo.Client
	timeout time.Duration
	log     *slog.Logger
}

func NewYFService(timeout time.Duration, log *slog.Logger) *YFService {
	return &YFService{client: yfgo.NewClient(), timeout: timeout, log: log}
}

func (s *YFService) Fundamentals(ctx context.Context, sym string) (types.Fundamentals, error) {
	f := types.Fundamentals{Ticker: sym, Name: sym}
	if sym == "" {
		return f, fmt.Errorf("empty symbol")
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	start := time.Now()
	raw, err := s.client.QuoteSummary(cctx, sym, modules)
	if err != nil {
		return f, fmt.Errorf("quote summary %s: %w", sym, err)
	}
	sum, err := decodeSummary(raw)
	if err != nil {
		return f, fmt.Errorf("quote summary %s: %w", sym, err)
	}
	s.log.Debug("fetched fundamentals", "sym", sym, "elapsed", time.Since(start))
	return sum.fundamentals(sym), nil
}

// decodeSummary converts the raw quoteSummary result through JSON into the
// partial record, the same round-trip yf-go uses for its typed view.
func decodeSummary(raw any) (summary, error) {
	var out summary
	b, err := json.Marshal(raw)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	return out, nil
}

// fundamentals applies the per-field fallback rules to one decoded payload.
func (s summary) fundamentals(sym string) types.Fundamentals {
	f := types.Fundamentals{Ticker: sym, Name: sym}

	if p := s.Price; p != nil {
		if p.ShortName != "" {
			f.Name = p.ShortName
		} else if p.LongName != "" {
			f.Name = p.LongName
		}
		if v := p.RegularMarketPrice; v.Raw != nil {
			f.Price = v.Raw
		}
	}
	// currentPrice wins over regularMarketPrice when both exist.
	if fd := s.FinancialData; fd != nil {
		if v := fd.CurrentPrice; v.Raw != nil {
			f.Price = v.Raw
		}
	}
	if sd := s.SummaryDetail; sd != nil {
		if v := sd.TrailingPE; v.Raw != nil {
			f.TrailingPE = v.Raw
		}
		if v := sd.ForwardPE; v.Raw != nil {
			f.ForwardPE = v.Raw
		}
		// Missing yield is a true zero, not an absent value.
		if v := sd.DividendYield; v.Raw != nil {
			f.DividendPct = *v.Raw * 100
		}
	}
	if ap := s.AssetProfile; ap != nil {
		f.Sector = ap.Sector
	}
	f.AnalystGrowthPct = s.analystGrowth()
	return f
}

// analystGrowth picks the growth estimate for the "+5y" horizon. Any
// decode failure or absence degrades to nil.
func (s summary) analystGrowth() *float64 {
	if len(s.EarningsTrend) == 0 {
		return nil
	}
	var et earningsTrend
	if err := json.Unmarshal(s.EarningsTrend, &et); err != nil {
		return nil
	}
	// First non-absent entry for the horizon wins.
	for _, tr := range et.Trend {
		if tr.Period != growthPeriod {
			continue
		}
		if v := tr.Growth; v.Raw != nil {
			g := *v.Raw * 100
			return &g
		}
	}
	return nil
}
