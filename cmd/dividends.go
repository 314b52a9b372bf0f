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

type dividendsCmd struct{}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "resolve dividend payments and their monthly tables" }
func (*dividendsCmd) Usage() string {
	return `dgt dividends

  Resolves every dividend cash event against the position reports and writes
  the payment overview, the running totals and the per-month payment table.
`
}

func (*dividendsCmd) SetFlags(f *flag.FlagSet) {}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	store := degiro.NewDirStore(cfg.SnapshotDir)
	records := degiro.ResolveDividends(ledger, store, cfg)
	payments := degiro.AggregateDividends(records, degiro.Today())
	totals := degiro.DividendTotals(records, degiro.Today())

	artifacts := []struct {
		name   string
		encode func(f *os.File) error
	}{
		{"Degiro - Dividend - Overzicht.csv", func(f *os.File) error { return degiro.EncodeDividends(f, records) }},
		{"Degiro - Dividend - Totaal.csv", func(f *os.File) error { return degiro.EncodeDividendTotals(f, totals) }},
		{"Degiro - Dividend - Betalingen.csv", func(f *os.File) error { return degiro.EncodeDividendPayments(f, payments) }},
	}
	for _, a := range artifacts {
		if err := writeArtifact(a.name, a.encode); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.RenderDividends(records))
	return subcommands.ExitSuccess
}
