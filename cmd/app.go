// Package cmd implements the CLI application to rebuild a portfolio history
// from broker reports.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/folioval/degiro"
)

// Register registers all subcommands. A main package calls Register() and
// then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&syncCmd{}, "reports")
	c.Register(&processCmd{}, "reports")
	c.Register(&transactionsCmd{}, "reports")
	c.Register(&dividendsCmd{}, "reports")
	c.Register(&graphsCmd{}, "reports")
	c.Register(&benchmarkCmd{}, "reports")

	c.Register(&assistCmd{}, "misc")
	c.Register(&topicCmd{}, "misc")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a TOML configuration file (optional)")

// loadConfig loads the configuration file named on the command line, or the
// defaults when none is given.
func loadConfig() (degiro.Config, error) {
	if *configFile == "" {
		return degiro.DefaultConfig(), nil
	}
	return degiro.LoadConfig(*configFile)
}

// loadLedger loads the configuration and both ledger files.
func loadLedger() (degiro.Config, *degiro.Ledger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return degiro.Config{}, nil, err
	}
	ledger, err := degiro.LoadLedger(cfg)
	if err != nil {
		return degiro.Config{}, nil, err
	}
	return cfg, ledger, nil
}

// writeArtifact writes one generated report and logs its name, mirroring the
// original reports' naming.
func writeArtifact(name string, encode func(f *os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := encode(f); err != nil {
		return fmt.Errorf("cannot write %q: %w", name, err)
	}
	fmt.Printf("Verslag %q opgeslagen!\n", name)
	return nil
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
