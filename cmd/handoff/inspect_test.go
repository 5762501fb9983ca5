package main

import (
	"strings"
	"testing"
)

func TestInspectCommandListsContracts(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return inspectCommand(nil)
	})
	if err != nil {
		t.Fatalf("inspectCommand failed: %v", err)
	}

	for _, want := range []string{
		"courier",
		"routable",
		"zoned-courier",
		"method   TakeDelivery() bool",
		"property Callsign string read-only",
		"property Zone string read-write",
		"exposes: TakeDelivery, Callsign",
		"exposes: Zone, SetZone",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectCommandConformers(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return inspectCommand([]string{"-conformers"})
	})
	if err != nil {
		t.Fatalf("inspectCommand failed: %v", err)
	}

	for _, want := range []string{
		"bike",
		"drone",
		"pager",
		"✓ courier",
		"✓ zoned-courier",
		"conceals Battery, Recharge",
		"✗ routable",
		"Zone (property getter): missing",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("conformance output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectCommandWithScenarioFile(t *testing.T) {
	path := writeScenario(t, `
[scenario]
name = "custom"
contract = "lifts"
operation = "TakeDelivery"

[[contracts]]
name = "lifts"
doc = "anything that can lift a package"

[[contracts.methods]]
name = "TakeDelivery"
returns = ["bool"]
`)

	out, err := captureStdout(t, func() error {
		return inspectCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("inspectCommand failed: %v", err)
	}
	if !strings.Contains(out, "lifts") {
		t.Fatalf("inline contract missing from output:\n%s", out)
	}
	if !strings.Contains(out, "method   TakeDelivery(...) bool") {
		t.Fatalf("inline method signature missing from output:\n%s", out)
	}
}

func TestInspectCommandMissingScenarioFile(t *testing.T) {
	err := inspectCommand([]string{"/nonexistent/scenario.toml"})
	if err == nil {
		t.Fatalf("expected load error")
	}
	if !strings.Contains(err.Error(), "load failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}
