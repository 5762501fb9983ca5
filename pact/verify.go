package pact

import (
	"fmt"
	"reflect"
	"strings"
)

// Violation describes one unmet requirement of a contract.
type Violation struct {
	Member string
	Reason string
}

// ConformanceError reports every member of a contract a conformer fails to
// provide. It is produced while a cast is assembled, before any dispatch, so
// conformance failures are never observable mid-run.
type ConformanceError struct {
	Contract   string
	Type       string
	Violations []Violation
}

func (e *ConformanceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pact: %s does not conform to %q", e.Type, e.Contract)
	for _, v := range e.Violations {
		fmt.Fprintf(&b, "\n  %s: %s", v.Member, v.Reason)
	}
	return b.String()
}

// Verify checks that conformer provides every member the contract requires,
// following Go method-set rules exactly: a value passed as a pointer offers
// both receiver kinds, a plain value offers value receivers only. A nil
// error means full conformance.
func Verify(c Contract, conformer any) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if conformer == nil {
		return fmt.Errorf("pact: cannot verify %q conformance of nil", c.Name)
	}
	t := reflect.TypeOf(conformer)
	var violations []Violation
	for _, req := range c.requirements() {
		if reason := checkRequirement(t, req); reason != "" {
			violations = append(violations, Violation{Member: req.display(), Reason: reason})
		}
	}
	if len(violations) > 0 {
		return &ConformanceError{Contract: c.Name, Type: t.String(), Violations: violations}
	}
	return nil
}

// Conforms reports whether conformer satisfies the contract.
func Conforms(c Contract, conformer any) bool {
	return Verify(c, conformer) == nil
}

// Concealed lists the exported methods of the conformer's concrete type that
// the contract does not expose. They remain reachable only through a
// reference typed as the concrete type, never through the contract.
func Concealed(c Contract, conformer any) []string {
	if conformer == nil {
		return nil
	}
	exposed := make(map[string]struct{})
	for _, req := range c.requirements() {
		exposed[req.name] = struct{}{}
	}
	t := reflect.TypeOf(conformer)
	var hidden []string
	for i := 0; i < t.NumMethod(); i++ {
		name := t.Method(i).Name
		if _, ok := exposed[name]; !ok {
			hidden = append(hidden, name)
		}
	}
	return hidden
}

func checkRequirement(t reflect.Type, req requirement) string {
	m, ok := t.MethodByName(req.name)
	if !ok {
		if t.Kind() != reflect.Pointer {
			if _, onPointer := reflect.PointerTo(t).MethodByName(req.name); onPointer {
				return "declared with a pointer receiver; provide the conformer as a pointer"
			}
		}
		return "missing"
	}

	// Methods looked up on a concrete type carry the receiver as the first
	// input; interface types do not.
	offset := 0
	if t.Kind() != reflect.Interface {
		offset = 1
	}
	ft := m.Type
	if req.params != nil {
		have := ft.NumIn() - offset
		if have != len(req.params) {
			return fmt.Sprintf("takes %d parameter(s), contract wants %d", have, len(req.params))
		}
		for i, want := range req.params {
			if got := ft.In(i + offset).String(); got != want {
				return fmt.Sprintf("parameter %d is %s, contract wants %s", i, got, want)
			}
		}
	}
	if req.returns != nil {
		if ft.NumOut() != len(req.returns) {
			return fmt.Sprintf("returns %d value(s), contract wants %d", ft.NumOut(), len(req.returns))
		}
		for i, want := range req.returns {
			if got := ft.Out(i).String(); got != want {
				return fmt.Sprintf("return %d is %s, contract wants %s", i, got, want)
			}
		}
	}
	return ""
}
