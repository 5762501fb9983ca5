package scenario

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EntryKind distinguishes the three transcript line sources.
type EntryKind int

const (
	// EntrySide is output a conformer produced while handling a dispatch.
	EntrySide EntryKind = iota
	// EntryBranch is the host's branch line for one trigger step.
	EntryBranch
	// EntryNote records acquire and clear bookkeeping.
	EntryNote
)

func (k EntryKind) String() string {
	switch k {
	case EntrySide:
		return "side"
	case EntryBranch:
		return "branch"
	case EntryNote:
		return "note"
	default:
		return "unknown"
	}
}

// Entry is one transcript line. Step is the 1-based index of the scenario
// step that produced it; Actor names the cast member behind a side line.
type Entry struct {
	Step  int
	Kind  EntryKind
	Actor string
	Text  string
}

// Transcript is the ordered record of one scenario run. For a trigger step
// the conformer's side lines always precede the host's branch line.
type Transcript struct {
	RunID    uuid.UUID
	Scenario string
	Entries  []Entry
}

// Branches returns the host branch lines in order, one per trigger step.
func (t *Transcript) Branches() []string {
	var out []string
	for _, e := range t.Entries {
		if e.Kind == EntryBranch {
			out = append(out, e.Text)
		}
	}
	return out
}

// String renders the plain human-readable form.
func (t *Transcript) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario %q run %s\n", t.Scenario, t.RunID)
	for _, e := range t.Entries {
		if e.Kind == EntrySide {
			fmt.Fprintf(&b, "  [%d] %s: %s\n", e.Step, e.Actor, e.Text)
			continue
		}
		fmt.Fprintf(&b, "  [%d] %s\n", e.Step, e.Text)
	}
	return b.String()
}
