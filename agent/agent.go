// Package agent implements a small interactive assistant that answers
// questions about the generated portfolio reports.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

const systemInstruction = `
	You are a portfolio assistant. The user's generated portfolio reports are
	provided below in CSV form: the daily statistics series, the per-product
	valuations, the dividend overview and the monthly trade aggregates.
	Dates are DD-MM-YYYY, amounts use a decimal comma, headers are Dutch.

	Answer questions about the portfolio from these reports only. When a
	figure is not derivable from the reports, say so instead of guessing.
	Keep answers short and cite the dates the figures come from.
`

// Agent is the assistant that handles the chat session.
type Agent struct {
	w       io.Writer
	r       *bufio.Reader
	reports map[string]string // report name to CSV content
	chat    *genai.Chat
}

// New creates an Agent grounded on the given reports, writing its output to
// w (e.g. os.Stdout) and reading user input from r (e.g. os.Stdin).
func New(w io.Writer, r io.Reader, reports map[string]string) *Agent {
	return &Agent{w: w, r: bufio.NewReader(r), reports: reports}
}

// Start creates the chat session and feeds it the report contents.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}
	chat, err := client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat

	var grounding strings.Builder
	for name, content := range a.reports {
		fmt.Fprintf(&grounding, "## %s\n\n```csv\n%s\n```\n\n", name, content)
	}
	_, err = chat.Send(ctx, &genai.Part{Text: "These are my portfolio reports:\n\n" + grounding.String()})
	return err
}

// Ask sends one question and returns the assistant's text answer.
func (a *Agent) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the assistant")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "assist> "

// Run starts the interactive REPL session. Prompts given up front are asked
// before reading from the user.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to dgt portfolio assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
