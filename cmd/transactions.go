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

type transactionsCmd struct{}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "aggregate the trade ledger into monthly totals" }
func (*transactionsCmd) Usage() string {
	return `dgt transactions

  Buckets every trade into calendar months and writes the monthly
  buy/sell/net table, one row per month with no gaps.
`
}

func (*transactionsCmd) SetFlags(f *flag.FlagSet) {}

func (c *transactionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	months := degiro.AggregateTrades(ledger.TradeEvents(), degiro.Today())

	if err := writeArtifact("Degiro - Transacties.csv", func(f *os.File) error {
		return degiro.EncodeTradeMonths(f, months)
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderTradeMonths(months))
	return subcommands.ExitSuccess
}
