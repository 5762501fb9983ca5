package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mgomes/handoff/pact"
	"github.com/mgomes/handoff/scenario"
)

func inspectCommand(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	conformers := fs.Bool("conformers", false, "report every conformer kind against every contract")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cat := scenario.Builtin()
	if remaining := fs.Args(); len(remaining) > 0 {
		sc, err := scenario.Load(remaining[0])
		if err != nil {
			return err
		}
		if _, err := scenario.ResolveContract(cat, sc); err != nil {
			return err
		}
	}

	fmt.Print(renderContracts(cat))
	if *conformers {
		fmt.Print(renderConformance(cat))
	}
	return nil
}

func renderContracts(cat *pact.Catalog) string {
	var b strings.Builder
	for _, name := range cat.Contracts() {
		contract, _ := cat.Contract(name)
		b.WriteString(headerStyle.Render(contract.Name))
		if contract.Doc != "" {
			b.WriteString(" " + mutedStyle.Render(contract.Doc))
		}
		b.WriteString("\n")
		for _, m := range contract.Methods {
			b.WriteString(fmt.Sprintf("  method   %s%s\n", m.Name, formatSignature(m)))
		}
		for _, p := range contract.Properties {
			b.WriteString(fmt.Sprintf("  property %s %s %s\n", p.Name, p.Type, p.Access))
		}
		b.WriteString(mutedStyle.Render("  exposes: "+strings.Join(contract.Exposed(), ", ")) + "\n\n")
	}
	return b.String()
}

// formatSignature renders the declared side of a method requirement; an
// unspecified side shows as "...".
func formatSignature(m pact.Method) string {
	sig := "(...)"
	if m.Params != nil {
		sig = "(" + strings.Join(m.Params, ", ") + ")"
	}
	switch {
	case m.Returns == nil:
		sig += " ..."
	case len(m.Returns) == 1:
		sig += " " + m.Returns[0]
	case len(m.Returns) > 1:
		sig += " (" + strings.Join(m.Returns, ", ") + ")"
	}
	return sig
}

func renderConformance(cat *pact.Catalog) string {
	var b strings.Builder
	for _, kind := range cat.Conformers() {
		provider, _ := cat.Conformer(kind)
		b.WriteString(helpKeyStyle.Render(kind))
		if provider.Doc != "" {
			b.WriteString(" " + mutedStyle.Render(provider.Doc))
		}
		b.WriteString("\n")

		conformer := provider.New(io.Discard)
		for _, name := range cat.Contracts() {
			contract, _ := cat.Contract(name)
			err := pact.Verify(contract, conformer)
			if err == nil {
				b.WriteString("  " + resultStyle.Render("✓ "+name))
				if hidden := pact.Concealed(contract, conformer); len(hidden) > 0 {
					b.WriteString(mutedStyle.Render(" conceals " + strings.Join(hidden, ", ")))
				}
				b.WriteString("\n")
				continue
			}
			var conformance *pact.ConformanceError
			if errors.As(err, &conformance) {
				b.WriteString("  " + errorStyle.Render("✗ "+name) + "\n")
				for _, v := range conformance.Violations {
					b.WriteString(mutedStyle.Render(fmt.Sprintf("      %s: %s", v.Member, v.Reason)) + "\n")
				}
				continue
			}
			b.WriteString("  " + errorStyle.Render("✗ "+name+": "+err.Error()) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
