package pact

import (
	"fmt"
	"strings"
	"unicode"
)

// Access declares how a contract property may be used through a
// contract-typed reference.
type Access int

const (
	// ReadOnly exposes the property getter only. The conformer's storage may
	// still be mutable; no setter becomes part of the contract surface.
	ReadOnly Access = iota
	// ReadWrite exposes the getter and the setter.
	ReadWrite
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	default:
		return fmt.Sprintf("access(%d)", int(a))
	}
}

// Method is a required operation: a name plus parameter and return type
// names, written as Go type strings ("string", "bool", "context.Context").
// A nil Params or Returns slice leaves that side of the signature
// unspecified; an empty non-nil slice requires exactly zero entries.
type Method struct {
	Name    string
	Params  []string
	Returns []string
}

// Property is a required accessor pair. The getter carries the property
// name (Zone() string); a read-write property additionally requires the
// conventional setter (SetZone(string)).
type Property struct {
	Name   string
	Type   string
	Access Access
}

// Getter returns the accessor name the property's reads go through.
func (p Property) Getter() string {
	return p.Name
}

// Setter returns the accessor name writes go through. Read-only properties
// have no setter in the contract surface.
func (p Property) Setter() string {
	return "Set" + p.Name
}

// Contract is a named, ordered set of required members that a concrete type
// may fulfill without inheriting any implementation. The zero-member
// contract is valid and is satisfied by every value.
type Contract struct {
	Name       string
	Doc        string
	Methods    []Method
	Properties []Property
}

// NewContract builds a validated contract. Member declaration order is
// preserved and is the order Exposed reports.
func NewContract(name, doc string, methods []Method, properties []Property) (Contract, error) {
	c := Contract{Name: name, Doc: doc, Methods: methods, Properties: properties}
	if err := c.Validate(); err != nil {
		return Contract{}, err
	}
	return c, nil
}

// MustNewContract builds a contract or panics on invalid requirements.
func MustNewContract(name, doc string, methods []Method, properties []Property) Contract {
	c, err := NewContract(name, doc, methods, properties)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks the contract declaration itself: a non-empty name,
// exported member names, non-empty property types, known access modes, and
// no duplicate member names (a property's setter counts as a member).
func (c Contract) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("pact: contract name must be non-empty")
	}
	seen := make(map[string]struct{}, len(c.Methods)+2*len(c.Properties))
	claim := func(member string) error {
		if _, ok := seen[member]; ok {
			return fmt.Errorf("pact: contract %q declares member %s more than once", c.Name, member)
		}
		seen[member] = struct{}{}
		return nil
	}
	for _, m := range c.Methods {
		if !exportedIdent(m.Name) {
			return fmt.Errorf("pact: contract %q method name %q must be an exported identifier", c.Name, m.Name)
		}
		if err := claim(m.Name); err != nil {
			return err
		}
	}
	for _, p := range c.Properties {
		if !exportedIdent(p.Name) {
			return fmt.Errorf("pact: contract %q property name %q must be an exported identifier", c.Name, p.Name)
		}
		if strings.TrimSpace(p.Type) == "" {
			return fmt.Errorf("pact: contract %q property %s needs a type", c.Name, p.Name)
		}
		if p.Access != ReadOnly && p.Access != ReadWrite {
			return fmt.Errorf("pact: contract %q property %s has unknown access mode", c.Name, p.Name)
		}
		if err := claim(p.Getter()); err != nil {
			return err
		}
		if p.Access == ReadWrite {
			if err := claim(p.Setter()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Exposed lists every member reachable through a reference typed as this
// contract, in declaration order: methods first, then property accessors
// (getter before setter). Nothing else is reachable through the contract.
func (c Contract) Exposed() []string {
	members := make([]string, 0, len(c.Methods)+2*len(c.Properties))
	for _, req := range c.requirements() {
		members = append(members, req.name)
	}
	return members
}

// Requires reports whether member is part of the contract surface.
func (c Contract) Requires(member string) bool {
	for _, req := range c.requirements() {
		if req.name == member {
			return true
		}
	}
	return false
}

// requirement is one concrete member obligation after property expansion.
type requirement struct {
	name    string
	params  []string
	returns []string
	label   string
}

func (r requirement) display() string {
	if r.label == "" {
		return r.name
	}
	return fmt.Sprintf("%s (%s)", r.name, r.label)
}

func (c Contract) requirements() []requirement {
	reqs := make([]requirement, 0, len(c.Methods)+2*len(c.Properties))
	for _, m := range c.Methods {
		reqs = append(reqs, requirement{name: m.Name, params: m.Params, returns: m.Returns, label: "method"})
	}
	for _, p := range c.Properties {
		reqs = append(reqs, requirement{
			name:    p.Getter(),
			params:  []string{},
			returns: []string{p.Type},
			label:   "property getter",
		})
		if p.Access == ReadWrite {
			reqs = append(reqs, requirement{
				name:    p.Setter(),
				params:  []string{p.Type},
				returns: []string{},
				label:   "property setter",
			})
		}
	}
	return reqs
}

func exportedIdent(name string) bool {
	for i, r := range name {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return name != ""
}
