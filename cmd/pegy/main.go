package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/komsit37/pegy/pkg/pegy/quote"
	"github.com/komsit37/pegy/pkg/pegy/render"
	"github.com/komsit37/pegy/pkg/pegy/screen"
	"github.com/komsit37/pegy/pkg/pegy/source"
	"github.com/komsit37/pegy/pkg/pegy/tickers"
	"github.com/komsit37/pegy/pkg/pegy/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pegy [tickers...]",
		Short: "Screen stocks by PEGY: P/E over (growth % + dividend %)",
		Long: `Screen stocks by PEGY = P/E / (EPS growth % + dividend yield %).
Lower is generally better; under 1.0 can suggest attractive value.
Tickers come from the arguments (comma or newline separated) or from
a screen YAML file. Fundamentals come from Yahoo Finance.`,
		SilenceUsage: true,
		RunE:         run,
	}
	fl := cmd.Flags()
	fl.String("file", "", "screen YAML file with tickers and settings")
	fl.String("pe", string(types.PEForward), "P/E type: forward or trailing")
	fl.String("growth", string(types.GrowthAnalyst), "growth source: analyst (manual fallback) or manual")
	fl.Float64("manual-growth", 10, "manual growth % applied where selected")
	fl.Float64("min-div", 0, "minimum dividend yield % filter (0 disables)")
	fl.Float64("max-pegy", 1.5, "maximum PEGY filter (0 disables)")
	fl.String("format", "table", "output format: table, csv, json or syms")
	fl.String("csv", "", "also write the screen as CSV to this path")
	fl.Bool("color", true, "colorize table output")
	fl.Bool("pretty", false, "indent json output")
	fl.Int("max-col-width", 0, "max table column width (0 fits the terminal)")
	fl.Bool("verbose", false, "log fetch progress to stderr")
	fl.Duration("ttl", quote.DefaultTTL, "fundamentals cache TTL")
	fl.Duration("timeout", 5*time.Second, "per-symbol provider timeout")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	viper.SetEnvPrefix("PEGY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if viper.GetBool("verbose") {
		logOut = cmd.ErrOrStderr()
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(cfg.Tickers) == 0 {
		return errors.New("at least one ticker required (comma or newline separated)")
	}

	svc := quote.NewCacheService(
		quote.NewYFService(viper.GetDuration("timeout"), log),
		viper.GetDuration("ttl"), 256)
	fetched := quote.FetchBatch(cmd.Context(), svc, cfg.Tickers)
	rows := screen.Run(fetched, cfg)
	log.Debug("screen complete", "fetched", len(fetched), "kept", len(rows))

	opts := render.Options{
		Color:       viper.GetBool("color"),
		PrettyJSON:  viper.GetBool("pretty"),
		MaxColWidth: viper.GetInt("max-col-width"),
	}
	if opts.MaxColWidth <= 0 {
		if w := detectTerminalWidth(); w > 0 {
			opts.MaxColWidth = w / len(render.Columns)
		}
	}

	r, err := rendererFor(viper.GetString("format"))
	if err != nil {
		return err
	}
	if err := r.Render(cmd.OutOrStdout(), rows, opts); err != nil {
		return err
	}

	if path := viper.GetString("csv"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		if err := render.NewCSVRenderer().Render(f, rows, opts); err != nil {
			return err
		}
	}
	return nil
}

// buildConfig layers settings: flag defaults and env, then the screen file,
// then explicitly set flags, then positional tickers.
func buildConfig(cmd *cobra.Command, args []string) (types.ScreenConfig, error) {
	cfg := types.ScreenConfig{
		PEType:          types.PEType(viper.GetString("pe")),
		GrowthSource:    types.GrowthSource(viper.GetString("growth")),
		ManualGrowthPct: viper.GetFloat64("manual-growth"),
		MinDividendPct:  viper.GetFloat64("min-div"),
		MaxPEGY:         viper.GetFloat64("max-pegy"),
	}

	if path := viper.GetString("file"); path != "" {
		sf, err := source.Load(path)
		if err != nil {
			return cfg, err
		}
		if err := sf.Apply(&cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
		fl := cmd.Flags()
		if fl.Changed("pe") {
			cfg.PEType = types.PEType(viper.GetString("pe"))
		}
		if fl.Changed("growth") {
			cfg.GrowthSource = types.GrowthSource(viper.GetString("growth"))
		}
		if fl.Changed("manual-growth") {
			cfg.ManualGrowthPct = viper.GetFloat64("manual-growth")
		}
		if fl.Changed("min-div") {
			cfg.MinDividendPct = viper.GetFloat64("min-div")
		}
		if fl.Changed("max-pegy") {
			cfg.MaxPEGY = viper.GetFloat64("max-pegy")
		}
	}

	if len(args) > 0 {
		cfg.Tickers = tickers.Parse(strings.Join(args, ","))
	}

	switch cfg.PEType {
	case types.PEForward, types.PETrailing:
	default:
		return cfg, fmt.Errorf("--pe: want %q or %q, got %q", types.PEForward, types.PETrailing, cfg.PEType)
	}
	switch cfg.GrowthSource {
	case types.GrowthAnalyst, types.GrowthManual:
	default:
		return cfg, fmt.Errorf("--growth: want %q or %q, got %q", types.GrowthAnalyst, types.GrowthManual, cfg.GrowthSource)
	}
	return cfg, nil
}

func rendererFor(format string) (render.Renderer, error) {
	switch format {
	case "table":
		return render.NewTableRenderer(), nil
	case "csv":
		return render.NewCSVRenderer(), nil
	case "json":
		return render.NewJSONRenderer(), nil
	case "syms":
		return render.NewSymsRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want table, csv, json or syms)", format)
	}
}
