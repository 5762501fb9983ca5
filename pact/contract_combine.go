package pact

import (
	"fmt"
	"slices"
)

// Combine merges several unrelated contracts into one: the conjunction of
// their requirements. A member declared identically by more than one source
// appears once; the same name with a different specification is a conflict.
// Conjunction introduces no shared implementation or state.
func Combine(name, doc string, contracts ...Contract) (Contract, error) {
	if len(contracts) == 0 {
		return Contract{}, fmt.Errorf("pact: Combine needs at least one contract")
	}
	var methods []Method
	var properties []Property
	seenMethods := make(map[string]Method)
	seenProperties := make(map[string]Property)
	for _, c := range contracts {
		if err := c.Validate(); err != nil {
			return Contract{}, err
		}
		for _, m := range c.Methods {
			if prev, ok := seenMethods[m.Name]; ok {
				if !methodsEqual(prev, m) {
					return Contract{}, fmt.Errorf("pact: Combine %q: method %s declared with conflicting signatures", name, m.Name)
				}
				continue
			}
			seenMethods[m.Name] = m
			methods = append(methods, m)
		}
		for _, p := range c.Properties {
			if prev, ok := seenProperties[p.Name]; ok {
				if prev != p {
					return Contract{}, fmt.Errorf("pact: Combine %q: property %s declared with conflicting requirements", name, p.Name)
				}
				continue
			}
			seenProperties[p.Name] = p
			properties = append(properties, p)
		}
	}
	return NewContract(name, doc, methods, properties)
}

// MustCombine merges contracts or panics on a conflict.
func MustCombine(name, doc string, contracts ...Contract) Contract {
	c, err := Combine(name, doc, contracts...)
	if err != nil {
		panic(err)
	}
	return c
}

func methodsEqual(a, b Method) bool {
	return a.Name == b.Name && typeListsEqual(a.Params, b.Params) && typeListsEqual(a.Returns, b.Returns)
}

// typeListsEqual distinguishes nil (unspecified signature) from an empty
// non-nil list (exactly zero entries).
func typeListsEqual(a, b []string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return slices.Equal(a, b)
}
