package pact

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"sync"
)

// Maker builds a fresh conformer. Side output the conformer produces while
// handling a dispatch goes to w.
type Maker func(w io.Writer) any

// Provider describes one registered conformer kind.
type Provider struct {
	Kind string
	Doc  string
	New  Maker
}

// Catalog holds contracts and conformer providers by name so data-driven
// layers can look them up. Safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	contracts map[string]Contract
	providers map[string]Provider
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		contracts: make(map[string]Contract),
		providers: make(map[string]Provider),
	}
}

// RegisterContract adds a contract. Re-registering the identical contract is
// idempotent; the same name with different requirements is a conflict.
func (c *Catalog) RegisterContract(contract Contract) error {
	if err := contract.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.contracts[contract.Name]; ok {
		if !reflect.DeepEqual(existing, contract) {
			return fmt.Errorf("pact: contract %q already registered with different requirements", contract.Name)
		}
		return nil
	}

	c.contracts[contract.Name] = contract
	return nil
}

// Contract returns the named contract.
func (c *Catalog) Contract(name string) (Contract, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	contract, ok := c.contracts[name]
	return contract, ok
}

// Contracts returns the sorted names of every registered contract.
func (c *Catalog) Contracts() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.contracts))
	for name := range c.contracts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterConformer adds a conformer provider under its kind.
func (c *Catalog) RegisterConformer(p Provider) error {
	if p.Kind == "" {
		return fmt.Errorf("pact: conformer kind is required")
	}
	if p.New == nil {
		return fmt.Errorf("pact: conformer %q needs a maker", p.Kind)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.providers[p.Kind]; ok {
		return fmt.Errorf("pact: conformer %q already registered", p.Kind)
	}

	c.providers[p.Kind] = p
	return nil
}

// Conformer returns the provider registered under kind.
func (c *Catalog) Conformer(kind string) (Provider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.providers[kind]
	return p, ok
}

// Conformers returns the sorted kinds of every registered provider.
func (c *Catalog) Conformers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	kinds := make([]string, 0, len(c.providers))
	for kind := range c.providers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
