package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const demoScenario = `
[scenario]
name = "bike-first"
contract = "courier"
operation = "TakeDelivery"

[[cast]]
name = "ada"
kind = "bike"

[[steps]]
op = "trigger"

[[steps]]
op = "acquire"
member = "ada"

[[steps]]
op = "trigger"
`

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"handoff", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"handoff", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"handoff"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandRequiresScenarioPath(t *testing.T) {
	err := runCommand(nil)
	if err == nil {
		t.Fatalf("expected scenario path error")
	}
	if !strings.Contains(err.Error(), "scenario path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandPrintsTranscriptInOrder(t *testing.T) {
	path := writeScenario(t, demoScenario)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}

	if !strings.Contains(out, "scenario bike-first") {
		t.Fatalf("missing header in output: %q", out)
	}
	fallback := strings.Index(out, "no handler")
	side := strings.Index(out, "rings the bell")
	handled := strings.Index(out, "→ handled")
	if fallback < 0 || side < 0 || handled < 0 {
		t.Fatalf("missing transcript lines in output: %q", out)
	}
	if !(fallback < side && side < handled) {
		t.Fatalf("transcript lines out of order: fallback=%d side=%d handled=%d\n%s",
			fallback, side, handled, out)
	}
}

func TestRunCommandMaxSteps(t *testing.T) {
	path := writeScenario(t, demoScenario)

	err := runCommand([]string{"-max-steps", "1", path})
	if err == nil {
		t.Fatalf("expected step quota error")
	}
	if !strings.Contains(err.Error(), "step quota exceeded") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandJournal(t *testing.T) {
	path := writeScenario(t, demoScenario)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-journal", path})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if !strings.Contains(out, "→ handled") {
		t.Fatalf("missing branch line in output: %q", out)
	}
}

func TestRunCommandRejectsInvalidScenario(t *testing.T) {
	path := writeScenario(t, "[scenario]\nname = \"x\"\n")

	err := runCommand([]string{path})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "missing contract") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandMissingFile(t *testing.T) {
	err := runCommand([]string{filepath.Join(t.TempDir(), "absent.toml")})
	if err == nil {
		t.Fatalf("expected load error")
	}
	if !strings.Contains(err.Error(), "load failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func writeScenario(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}
