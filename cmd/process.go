package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/folioval/degiro"
	"github.com/folioval/degiro/renderer"
)

type processCmd struct{}

func (*processCmd) Name() string { return "process" }
func (*processCmd) Synopsis() string {
	return "rebuild the daily statistics and valuations from the reports"
}
func (*processCmd) Usage() string {
	return `dgt process

  Walks every day from the earliest ledger date to yesterday, reconciling the
  cash ledger with the daily position reports, and writes the statistics
  series and the per-product valuation table.
`
}

func (*processCmd) SetFlags(f *flag.FlagSet) {}

func (c *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	store := degiro.NewDirStore(cfg.SnapshotDir)
	stats, matrix := degiro.Reconcile(ledger, store, cfg, ledger.StartDate(), degiro.Today())

	if err := writeArtifact("Degiro - Rendement.csv", func(f *os.File) error {
		return degiro.EncodeStats(f, stats)
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := writeArtifact("Degiro - Waarde.csv", func(f *os.File) error {
		return degiro.EncodeValueMatrix(f, matrix)
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderSummary(stats))
	return subcommands.ExitSuccess
}
