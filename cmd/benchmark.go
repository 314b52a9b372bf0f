package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/folioval/degiro"
)

type benchmarkCmd struct{}

func (*benchmarkCmd) Name() string     { return "benchmark" }
func (*benchmarkCmd) Synopsis() string { return "track the benchmark indices over the ledger range" }
func (*benchmarkCmd) Usage() string {
	return `dgt benchmark

  Fetches daily closes for the configured tickers and writes their indexed
  returns, rebased to 0% at the earliest ledger date, as one table.
`
}

func (*benchmarkCmd) SetFlags(f *flag.FlagSet) {}

func (c *benchmarkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tracked := degiro.TrackBenchmarks(nil, cfg, ledger.StartDate(), degiro.Yesterday())
	if err := writeArtifact("Degiro - Benchmarks.csv", func(f *os.File) error {
		return degiro.EncodeTracked(f, cfg.BenchmarkTickers, tracked)
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
