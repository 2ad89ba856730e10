package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/komsit37/pegy/pkg/pegy/tickers"
	"github.com/komsit37/pegy/pkg/pegy/types"
)

// ScreenFile is the on-disk YAML shape for a saved screen. All settings are
// optional; absent ones keep whatever the caller already configured.
type ScreenFile struct {
	Tickers      TickerList `yaml:"tickers"`
	PE           string     `yaml:"pe"`
	Growth       string     `yaml:"growth"`
	ManualGrowth *float64   `yaml:"manual_growth"`
	MinDividend  *float64   `yaml:"min_dividend"`
	MaxPEGY      *float64   `yaml:"max_pegy"`
}

// TickerList accepts either a YAML sequence of symbols or a single
// free-text scalar with comma/newline separators.
type TickerList []string

func (l *TickerList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var txt string
		if err := value.Decode(&txt); err != nil {
			return err
		}
		*l = tickers.Parse(txt)
		return nil
	case yaml.SequenceNode:
		var raw []string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		out := make([]string, 0, len(raw))
		for _, r := range raw {
			out = append(out, tickers.Parse(r)...)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("tickers: expected scalar or sequence")
	}
}

// Load reads and parses a screen file.
func Load(path string) (ScreenFile, error) {
	var sf ScreenFile
	data, err := os.ReadFile(path)
	if err != nil {
		return sf, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return sf, fmt.Errorf("parse yaml %s: %w", path, err)
	}
	return sf, nil
}

// Apply copies the file's settings into cfg. Only fields the file actually
// carries are applied, so callers can layer explicit flags on top.
func (sf ScreenFile) Apply(cfg *types.ScreenConfig) error {
	if len(sf.Tickers) > 0 {
		cfg.Tickers = sf.Tickers
	}
	switch sf.PE {
	case "":
	case string(types.PEForward), string(types.PETrailing):
		cfg.PEType = types.PEType(sf.PE)
	default:
		return fmt.Errorf("pe: want %q or %q, got %q", types.PEForward, types.PETrailing, sf.PE)
	}
	switch sf.Growth {
	case "":
	case string(types.GrowthAnalyst), string(types.GrowthManual):
		cfg.GrowthSource = types.GrowthSource(sf.Growth)
	default:
		return fmt.Errorf("growth: want %q or %q, got %q", types.GrowthAnalyst, types.GrowthManual, sf.Growth)
	}
	if sf.ManualGrowth != nil {
		cfg.ManualGrowthPct = *sf.ManualGrowth
	}
	if sf.MinDividend != nil {
		cfg.MinDividendPct = *sf.MinDividend
	}
	if sf.MaxPEGY != nil {
		cfg.MaxPEGY = *sf.MaxPEGY
	}
	return nil
}
