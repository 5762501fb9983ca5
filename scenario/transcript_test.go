package scenario

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestTranscriptString(t *testing.T) {
	transcript := &Transcript{
		RunID:    uuid.Nil,
		Scenario: "demo",
		Entries: []Entry{
			{Step: 1, Kind: EntryBranch, Text: "no handler"},
			{Step: 2, Kind: EntryNote, Actor: "ada", Text: "acquired ada (bike)"},
			{Step: 3, Kind: EntrySide, Actor: "ada", Text: "bike-7 rings the bell and pedals off"},
			{Step: 3, Kind: EntryBranch, Text: "handled"},
		},
	}

	got := transcript.String()
	want := `scenario "demo" run 00000000-0000-0000-0000-000000000000
  [1] no handler
  [2] acquired ada (bike)
  [3] ada: bike-7 rings the bell and pedals off
  [3] handled
`
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestTranscriptBranches(t *testing.T) {
	transcript := &Transcript{
		Entries: []Entry{
			{Step: 1, Kind: EntryBranch, Text: "no handler"},
			{Step: 2, Kind: EntryNote, Text: "acquired ada (bike)"},
			{Step: 3, Kind: EntrySide, Actor: "ada", Text: "bike-7 rings the bell and pedals off"},
			{Step: 3, Kind: EntryBranch, Text: "handled"},
		},
	}

	if got, want := transcript.Branches(), []string{"no handler", "handled"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Branches() = %v, want %v", got, want)
	}
}

func TestEntryKindString(t *testing.T) {
	cases := map[EntryKind]string{
		EntrySide:    "side",
		EntryBranch:  "branch",
		EntryNote:    "note",
		EntryKind(9): "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("EntryKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestTranscriptStringSkipsActorForNotes(t *testing.T) {
	transcript := &Transcript{
		Scenario: "x",
		Entries:  []Entry{{Step: 1, Kind: EntryNote, Actor: "ada", Text: "acquired ada (bike)"}},
	}
	if strings.Contains(transcript.String(), "ada: acquired") {
		t.Fatalf("note entry rendered with an actor prefix:\n%s", transcript.String())
	}
}
