package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/folioval/degiro"
)

type syncCmd struct {
	session string
	from    string
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "download the broker reports" }
func (*syncCmd) Usage() string {
	return `dgt sync -session <JSESSIONID> [-from <DD-MM-YYYY>]

  Downloads the cash and transaction reports, then every missing daily
  position report from the earliest ledger date (or -from) up to yesterday.
  The session id comes from an authenticated browser session with the broker.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.session, "session", "", "Broker JSESSIONID cookie value")
	f.StringVar(&c.from, "from", "", "First day to fetch position reports for (defaults to the earliest ledger date)")
}

func (c *syncCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.session == "" {
		fmt.Fprintln(os.Stderr, "sync requires -session, see dgt help sync")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	source := degiro.NewReportSource(c.session)
	store := degiro.NewDirStore(cfg.SnapshotDir)

	var from degiro.Date
	if c.from != "" {
		from, err = degiro.ParseDate(c.from)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	if from.IsZero() {
		// The ledgers may not exist yet on a first sync. Fetch them first,
		// then derive the start date from what came in.
		if err := degiro.Sync(source, store, cfg, degiro.Today()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		from, err = degiro.SyncStart(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	if err := degiro.Sync(source, store, cfg, from); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println("Verslagen opgehaald!")
	return subcommands.ExitSuccess
}
