package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/mgomes/handoff/scenario"
)

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	maxSteps := fs.Int("max-steps", 0, "abort runs longer than this many steps (0 uses the default)")
	journal := fs.Bool("journal", false, "log cast assembly and host events to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("handoff run: scenario path required")
	}
	path, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve scenario path: %w", err)
	}
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}

	logger := zerolog.Nop()
	if *journal {
		logger = initLogger("handoff")
	}
	runner, err := scenario.NewRunner(scenario.Config{MaxSteps: *maxSteps, Logger: logger})
	if err != nil {
		return err
	}
	transcript, err := runner.Run(context.Background(), sc)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	fmt.Print(renderTranscript(transcript))
	return nil
}

func initLogger(app string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Str("app", app).Logger()
}

func renderTranscript(t *scenario.Transcript) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("scenario "+t.Scenario) + " " + mutedStyle.Render("run "+t.RunID.String()) + "\n")
	for _, e := range t.Entries {
		num := mutedStyle.Render(fmt.Sprintf("[%d]", e.Step))
		switch e.Kind {
		case scenario.EntrySide:
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", num, e.Actor, e.Text))
		case scenario.EntryBranch:
			b.WriteString(fmt.Sprintf("  %s %s\n", num, branchOutcomeStyle(e.Text).Render("→ "+e.Text)))
		default:
			b.WriteString(fmt.Sprintf("  %s %s\n", num, mutedStyle.Render(e.Text)))
		}
	}
	return b.String()
}

func branchOutcomeStyle(outcome string) lipgloss.Style {
	switch outcome {
	case "handled":
		return resultStyle
	case "declined":
		return warnStyle
	case "failed":
		return errorStyle
	default:
		return mutedStyle
	}
}
