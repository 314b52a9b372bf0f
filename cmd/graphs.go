package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/folioval/degiro"
	"github.com/folioval/degiro/renderer"
)

type graphsCmd struct {
	dir        string
	benchmarks bool
}

func (*graphsCmd) Name() string     { return "graphs" }
func (*graphsCmd) Synopsis() string { return "render the portfolio charts as PNG files" }
func (*graphsCmd) Usage() string {
	return `dgt graphs [-dir <folder>] [-benchmarks=false]

  Reconciles the full history and renders the value, result, performance,
  daily-change and monthly-purchases charts into the graphs folder.
`
}

func (c *graphsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", "graphs", "Folder the PNG files are written to")
	f.BoolVar(&c.benchmarks, "benchmarks", true, "Overlay the benchmark indices on the performance chart")
}

func (c *graphsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	store := degiro.NewDirStore(cfg.SnapshotDir)
	start := ledger.StartDate()
	stats, matrix := degiro.Reconcile(ledger, store, cfg, start, degiro.Today())
	months := degiro.AggregateTrades(ledger.TradeEvents(), degiro.Today())

	benchmarks := map[string][]degiro.TrackedPoint{}
	if c.benchmarks {
		benchmarks = degiro.TrackBenchmarks(nil, cfg, start, degiro.Yesterday())
	}

	charts := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{"Portfolio - Rendement.png", func() ([]byte, error) { return renderer.ProfitChart(stats) }},
		{"Portfolio - Waarde.png", func() ([]byte, error) { return renderer.ValueChart(matrix) }},
		{"Portfolio - Prestatie.png", func() ([]byte, error) { return renderer.PerformanceChart(stats, benchmarks) }},
		{"Veranderingen - Procentueel.png", func() ([]byte, error) {
			return renderer.ChangeHistogram(stats, "Dagelijks rendement(%)",
				func(r degiro.StatsRow) float64 { return r.DailyResultPct }, renderer.PctLabel)
		}},
		{"Veranderingen - Waarde.png", func() ([]byte, error) {
			return renderer.ChangeHistogram(stats, "Dagelijks rendement",
				func(r degiro.StatsRow) float64 { return r.DailyResult }, renderer.EuroLabel)
		}},
	}
	for year := start.Year(); year <= degiro.Today().Year(); year++ {
		year := year
		charts = append(charts, struct {
			name   string
			render func() ([]byte, error)
		}{
			fmt.Sprintf("Aankopen - %d.png", year),
			func() ([]byte, error) { return renderer.PurchasesChart(months, year) },
		})
	}

	for _, chart := range charts {
		png, err := chart.render()
		if err != nil {
			// A chart without enough data is not worth aborting the rest.
			fmt.Fprintf(os.Stderr, "skipping %q: %v\n", chart.name, err)
			continue
		}
		name := filepath.Join(c.dir, chart.name)
		if err := os.WriteFile(name, png, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Grafiek %q opgeslagen!\n", name)
	}
	return subcommands.ExitSuccess
}
