package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mgomes/handoff/pact"
)

// Step operations a scenario may perform against its host.
const (
	OpAcquire = "acquire"
	OpTrigger = "trigger"
	OpClear   = "clear"
)

// Meta names the scenario, the contract the host reference is typed as, and
// the designated operation each trigger dispatches.
type Meta struct {
	Name      string `toml:"name"`
	Contract  string `toml:"contract"`
	Operation string `toml:"operation"`
}

// MethodDef declares one required method of an inline contract. Omitting
// params or returns leaves that side of the signature unspecified.
type MethodDef struct {
	Name    string   `toml:"name"`
	Params  []string `toml:"params"`
	Returns []string `toml:"returns"`
}

// PropertyDef declares one required property of an inline contract. Access
// is "read-only" (the default) or "read-write".
type PropertyDef struct {
	Name   string `toml:"name"`
	Type   string `toml:"type"`
	Access string `toml:"access"`
}

// ContractDef is an inline contract declaration carried by a scenario file.
type ContractDef struct {
	Name       string        `toml:"name"`
	Doc        string        `toml:"doc"`
	Methods    []MethodDef   `toml:"methods"`
	Properties []PropertyDef `toml:"properties"`
}

// Contract converts the definition into a validated pact.Contract.
func (d ContractDef) Contract() (pact.Contract, error) {
	methods := make([]pact.Method, 0, len(d.Methods))
	for _, m := range d.Methods {
		methods = append(methods, pact.Method{Name: m.Name, Params: m.Params, Returns: m.Returns})
	}
	properties := make([]pact.Property, 0, len(d.Properties))
	for _, p := range d.Properties {
		access, err := parseAccess(p.Access)
		if err != nil {
			return pact.Contract{}, fmt.Errorf("scenario: contract %q property %s: %w", d.Name, p.Name, err)
		}
		properties = append(properties, pact.Property{Name: p.Name, Type: p.Type, Access: access})
	}
	return pact.NewContract(d.Name, d.Doc, methods, properties)
}

func parseAccess(s string) (pact.Access, error) {
	switch strings.TrimSpace(s) {
	case "", "read-only":
		return pact.ReadOnly, nil
	case "read-write":
		return pact.ReadWrite, nil
	default:
		return 0, fmt.Errorf("unknown access mode %q (want read-only or read-write)", s)
	}
}

// CastMember names one conformer to build from a catalog kind.
type CastMember struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"`
}

// Step is one host operation. Acquire names the cast member to store;
// trigger and clear take no member.
type Step struct {
	Op     string `toml:"op"`
	Member string `toml:"member"`
}

// Scenario is a declarative delegation run: a contract, a cast of
// conformers, and the host operations to perform in order.
type Scenario struct {
	Meta      Meta          `toml:"scenario"`
	Contracts []ContractDef `toml:"contracts"`
	Cast      []CastMember  `toml:"cast"`
	Steps     []Step        `toml:"steps"`
}

// Parse decodes, defaults, and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := toml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario: parse failed: %w", err)
	}
	if strings.TrimSpace(sc.Meta.Name) == "" {
		sc.Meta.Name = "untitled"
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads a scenario file through Parse.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: load failed (%s): %w", path, err)
	}
	return Parse(data)
}

// Validate checks structural requirements: a contract and operation to
// dispatch, well-formed cast entries, and steps that reference known
// members. Conformance itself is checked later, when the cast is assembled.
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.Meta.Name) == "" {
		return fmt.Errorf("scenario: missing name")
	}
	if strings.TrimSpace(s.Meta.Contract) == "" {
		return fmt.Errorf("scenario: missing contract")
	}
	if strings.TrimSpace(s.Meta.Operation) == "" {
		return fmt.Errorf("scenario: missing operation")
	}
	names := make(map[string]struct{}, len(s.Cast))
	for i, member := range s.Cast {
		if strings.TrimSpace(member.Name) == "" {
			return fmt.Errorf("scenario: cast[%d] missing name", i)
		}
		if strings.TrimSpace(member.Kind) == "" {
			return fmt.Errorf("scenario: cast member %q missing kind", member.Name)
		}
		if _, ok := names[member.Name]; ok {
			return fmt.Errorf("scenario: duplicate cast member %q", member.Name)
		}
		names[member.Name] = struct{}{}
	}
	for i, step := range s.Steps {
		switch step.Op {
		case OpTrigger, OpClear:
			if step.Member != "" {
				return fmt.Errorf("scenario: step[%d] %s does not take a member", i, step.Op)
			}
		case OpAcquire:
			if step.Member == "" {
				return fmt.Errorf("scenario: step[%d] acquire requires a member", i)
			}
			if _, ok := names[step.Member]; !ok {
				return fmt.Errorf("scenario: step[%d] acquires unknown cast member %q", i, step.Member)
			}
		default:
			return fmt.Errorf("scenario: step[%d] unknown op %q", i, step.Op)
		}
	}
	return nil
}

// ResolveContract registers the scenario's inline contract definitions in
// cat and returns the contract the host reference is typed as. The
// designated operation must be a member of that contract.
func ResolveContract(cat *pact.Catalog, sc *Scenario) (pact.Contract, error) {
	for _, def := range sc.Contracts {
		c, err := def.Contract()
		if err != nil {
			return pact.Contract{}, err
		}
		if err := cat.RegisterContract(c); err != nil {
			return pact.Contract{}, err
		}
	}
	contract, ok := cat.Contract(sc.Meta.Contract)
	if !ok {
		return pact.Contract{}, fmt.Errorf("scenario: unknown contract %q (registered: %s)",
			sc.Meta.Contract, strings.Join(cat.Contracts(), ", "))
	}
	if !contract.Requires(sc.Meta.Operation) {
		return pact.Contract{}, fmt.Errorf("scenario: operation %q is not a member of contract %q",
			sc.Meta.Operation, sc.Meta.Contract)
	}
	return contract, nil
}
