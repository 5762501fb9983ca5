package scenario

import "testing"

func FuzzParse(f *testing.F) {
	f.Add(demoTOML)
	f.Add("")
	f.Add("not toml at all ][")
	f.Add("[scenario]\nname = \"x\"")
	f.Add(`
[scenario]
name = "fuzz"
contract = "courier"
operation = "TakeDelivery"

[[steps]]
op = "trigger"
`)

	f.Fuzz(func(t *testing.T, src string) {
		sc, err := Parse([]byte(src))
		if err != nil {
			return
		}
		// Anything Parse accepts must be defaulted and valid.
		if sc.Meta.Name == "" {
			t.Fatalf("accepted scenario has an empty name")
		}
		if err := sc.Validate(); err != nil {
			t.Fatalf("accepted scenario fails validation: %v", err)
		}
	})
}
