package pact

import (
	"strings"
	"testing"
)

func requireErrorContains(t testing.TB, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}
	if got := err.Error(); !strings.Contains(got, want) {
		t.Fatalf("unexpected error: %s", got)
	}
}

func mustContract(t testing.TB, name string, methods []Method, properties []Property) Contract {
	t.Helper()
	c, err := NewContract(name, "", methods, properties)
	if err != nil {
		t.Fatalf("NewContract %s failed: %v", name, err)
	}
	return c
}
