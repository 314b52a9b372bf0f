package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/folioval/degiro/agent"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `dgt assist [question]

  Starts an interactive session with an assistant grounded on the generated
  report files. Run 'dgt process', 'dgt transactions' and 'dgt dividends'
  first so the reports exist.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

// reportFiles are the generated artifacts the assistant is grounded on.
var reportFiles = []string{
	"Degiro - Rendement.csv",
	"Degiro - Waarde.csv",
	"Degiro - Transacties.csv",
	"Degiro - Dividend - Overzicht.csv",
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	reports := make(map[string]string)
	for _, name := range reportFiles {
		content, err := os.ReadFile(name)
		if err != nil {
			continue // not generated yet, the assistant works with what exists
		}
		reports[name] = string(content)
	}
	if len(reports) == 0 {
		fmt.Fprintln(os.Stderr, "No generated reports found, run 'dgt process' first.")
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin, reports)
	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
