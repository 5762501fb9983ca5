package scenario

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/mgomes/handoff/pact"
)

// Invoker calls a bound designated operation on a conformer.
type Invoker func(ctx context.Context) (bool, error)

// Member is one named conformer readied for dispatch: built by its catalog
// provider, verified against the scenario contract, and bound to the
// designated operation.
type Member struct {
	Name      string
	Kind      string
	Conformer any
	Invoke    Invoker
}

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// BindOperation resolves the named operation on conformer and adapts it to
// the Invoker shape. Accepted receiver shapes: func() bool,
// func() (bool, error), func(context.Context) bool, and
// func(context.Context) (bool, error).
func BindOperation(conformer any, operation string) (Invoker, error) {
	if conformer == nil {
		return nil, fmt.Errorf("cannot bind %s on a nil conformer", operation)
	}
	m := reflect.ValueOf(conformer).MethodByName(operation)
	if !m.IsValid() {
		return nil, fmt.Errorf("%T has no operation %s", conformer, operation)
	}
	t := m.Type()

	wantsCtx := false
	switch t.NumIn() {
	case 0:
	case 1:
		if t.In(0) != ctxType {
			return nil, fmt.Errorf("operation %s takes %s, want context.Context", operation, t.In(0))
		}
		wantsCtx = true
	default:
		return nil, fmt.Errorf("operation %s takes %d parameters, want at most a context", operation, t.NumIn())
	}

	returnsErr := false
	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errType {
			return nil, fmt.Errorf("operation %s second return is %s, want error", operation, t.Out(1))
		}
		returnsErr = true
	default:
		return nil, fmt.Errorf("operation %s returns %d values, want bool or (bool, error)", operation, t.NumOut())
	}
	if t.Out(0).Kind() != reflect.Bool {
		return nil, fmt.Errorf("operation %s returns %s, want bool", operation, t.Out(0))
	}

	return func(ctx context.Context) (bool, error) {
		var args []reflect.Value
		if wantsCtx {
			args = []reflect.Value{reflect.ValueOf(ctx)}
		}
		out := m.Call(args)
		var err error
		if returnsErr && !out[1].IsNil() {
			err = out[1].Interface().(error)
		}
		return out[0].Bool(), err
	}, nil
}

// Assemble builds the scenario's cast: each member is constructed by its
// provider, verified against the contract, and bound to the designated
// operation. Side output from the conformers goes to w. Any failure aborts
// assembly, so a bad cast member is caught before a single step runs.
func Assemble(cat *pact.Catalog, contract pact.Contract, operation string, cast []CastMember, w io.Writer) ([]*Member, error) {
	if w == nil {
		w = io.Discard
	}
	members := make([]*Member, 0, len(cast))
	seen := make(map[string]struct{}, len(cast))
	for _, cm := range cast {
		if _, ok := seen[cm.Name]; ok {
			return nil, fmt.Errorf("scenario: duplicate cast member %q", cm.Name)
		}
		seen[cm.Name] = struct{}{}

		provider, ok := cat.Conformer(cm.Kind)
		if !ok {
			return nil, fmt.Errorf("scenario: cast member %q has unknown kind %q (registered: %v)",
				cm.Name, cm.Kind, cat.Conformers())
		}
		conformer := provider.New(w)
		if err := pact.Verify(contract, conformer); err != nil {
			return nil, fmt.Errorf("scenario: cast member %q: %w", cm.Name, err)
		}
		invoke, err := BindOperation(conformer, operation)
		if err != nil {
			return nil, fmt.Errorf("scenario: cast member %q: %w", cm.Name, err)
		}
		members = append(members, &Member{Name: cm.Name, Kind: cm.Kind, Conformer: conformer, Invoke: invoke})
	}
	return members, nil
}
