package scenario

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mgomes/handoff/pact"
)

// DefaultMaxSteps bounds a run when Config leaves MaxSteps unset.
const DefaultMaxSteps = 100

// Config controls scenario execution.
type Config struct {
	// Catalog supplies contracts and conformer kinds. Defaults to Builtin().
	Catalog *pact.Catalog
	// MaxSteps aborts a run that executes more than this many steps.
	// Defaults to DefaultMaxSteps; negative values are rejected.
	MaxSteps int
	// Logger journals cast assembly and host events. The zero value
	// discards them.
	Logger zerolog.Logger
}

// Runner executes scenarios with deterministic limits.
type Runner struct {
	config Config
}

// NewRunner constructs a Runner with sane defaults.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("scenario: MaxSteps must not be negative")
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.Catalog == nil {
		cfg.Catalog = Builtin()
	}
	return &Runner{config: cfg}, nil
}

// MustNewRunner constructs a Runner or panics if the config is invalid.
func MustNewRunner(cfg Config) *Runner {
	runner, err := NewRunner(cfg)
	if err != nil {
		panic(err)
	}
	return runner
}

// Run executes the scenario and returns its transcript. Inline contract
// definitions are registered first; the cast is then assembled and verified
// in full, so conformance failures surface here and never once the steps
// are underway. Each trigger performs one synchronous dispatch; a dispatch
// error aborts the run.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Transcript, error) {
	if sc == nil {
		return nil, fmt.Errorf("scenario: nil scenario")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	contract, err := ResolveContract(r.config.Catalog, sc)
	if err != nil {
		return nil, err
	}

	logger := r.config.Logger.With().Str("scenario", sc.Meta.Name).Logger()

	var side bytes.Buffer
	members, err := Assemble(r.config.Catalog, contract, sc.Meta.Operation, sc.Cast, &side)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*Member, len(members))
	for _, m := range members {
		byName[m.Name] = m
		logger.Debug().Str("member", m.Name).Str("kind", m.Kind).Str("contract", contract.Name).Msg("cast member verified")
	}

	host, err := pact.NewHost(pact.HostConfig[*Member]{
		Name: sc.Meta.Name,
		Dispatch: func(ctx context.Context, m *Member) (bool, error) {
			return m.Invoke(ctx)
		},
		Observer: pact.ObserverFunc(func(e pact.Event) {
			evt := logger.Debug().Str("kind", e.Kind.String())
			if e.Delegate != "" {
				evt = evt.Str("delegate", e.Delegate)
			}
			if e.Kind == pact.EventTrigger {
				evt = evt.Str("outcome", e.Outcome.String())
			}
			if e.Err != nil {
				evt = evt.Err(e.Err)
			}
			evt.Msg("host event")
		}),
	})
	if err != nil {
		return nil, err
	}

	transcript := &Transcript{RunID: uuid.New(), Scenario: sc.Meta.Name}
	var current *Member

	for i, step := range sc.Steps {
		if i >= r.config.MaxSteps {
			return nil, fmt.Errorf("scenario: step quota exceeded (%d)", r.config.MaxSteps)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		stepNo := i + 1
		switch step.Op {
		case OpAcquire:
			member := byName[step.Member]
			host.Acquire(member)
			current = member
			transcript.Entries = append(transcript.Entries, Entry{
				Step:  stepNo,
				Kind:  EntryNote,
				Actor: member.Name,
				Text:  fmt.Sprintf("acquired %s (%s)", member.Name, member.Kind),
			})
		case OpTrigger:
			outcome, err := host.Trigger(ctx)
			appendSide(transcript, stepNo, current, &side)
			if err != nil {
				return nil, fmt.Errorf("scenario: step %d trigger: %w", stepNo, err)
			}
			transcript.Entries = append(transcript.Entries, Entry{
				Step: stepNo,
				Kind: EntryBranch,
				Text: outcome.String(),
			})
		case OpClear:
			had := host.Clear()
			current = nil
			text := "cleared"
			if !had {
				text = "cleared (slot was already empty)"
			}
			transcript.Entries = append(transcript.Entries, Entry{Step: stepNo, Kind: EntryNote, Text: text})
		}
	}

	logger.Info().
		Str("run_id", transcript.RunID.String()).
		Int("steps", len(sc.Steps)).
		Int("entries", len(transcript.Entries)).
		Msg("scenario complete")
	return transcript, nil
}

// appendSide drains buffered conformer output into side entries. It runs
// before the branch entry is appended, preserving the side-then-branch
// ordering of each trigger step.
func appendSide(t *Transcript, step int, current *Member, buf *bytes.Buffer) {
	if buf.Len() == 0 {
		return
	}
	actor := ""
	if current != nil {
		actor = current.Name
	}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if line == "" {
			continue
		}
		t.Entries = append(t.Entries, Entry{Step: step, Kind: EntrySide, Actor: actor, Text: line})
	}
	buf.Reset()
}
