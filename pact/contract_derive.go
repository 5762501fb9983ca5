package pact

import (
	"fmt"
	"reflect"
)

// Describe derives a contract from the Go interface type T. Every interface
// method becomes a fully specified method requirement; property requirements
// cannot be recovered from an interface and are declared by hand.
func Describe[T any](name, doc string) (Contract, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Interface {
		return Contract{}, fmt.Errorf("pact: Describe requires an interface type, got %s", t)
	}
	methods := make([]Method, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if m.PkgPath != "" {
			return Contract{}, fmt.Errorf("pact: interface %s has unexported method %s", t, m.Name)
		}
		params := make([]string, 0, m.Type.NumIn())
		for j := 0; j < m.Type.NumIn(); j++ {
			params = append(params, m.Type.In(j).String())
		}
		returns := make([]string, 0, m.Type.NumOut())
		for j := 0; j < m.Type.NumOut(); j++ {
			returns = append(returns, m.Type.Out(j).String())
		}
		methods = append(methods, Method{Name: m.Name, Params: params, Returns: returns})
	}
	return NewContract(name, doc, methods, nil)
}

// MustDescribe derives a contract from T or panics.
func MustDescribe[T any](name, doc string) Contract {
	c, err := Describe[T](name, doc)
	if err != nil {
		panic(err)
	}
	return c
}
