// Package pact implements capability contracts and single-slot delegation.
// A Contract names the members a conformer must expose: method requirements
// (signature only) and property requirements (name, type, and read-only or
// read-write access). The package supports the following workflow:
//   - Declare contracts directly, derive them from Go interface types via
//     Describe, or merge several into a conjunction with Combine.
//   - Check a concrete value against a contract with Verify, the runtime
//     mirror of the static check the compiler performs for Go interfaces.
//     Verification happens while a cast is assembled, never mid-run.
//   - Hold zero or one delegate in a Host and Trigger the contract's
//     designated operation against it, branching on the boolean result and
//     falling back to a configured action when the slot is empty.
//   - Register contracts and conformer providers by name in a Catalog so
//     data-driven layers (scenario files, the playground) can look them up.
//
// A contract-typed reference exposes exactly the members the contract
// declares; everything else a concrete conformer carries stays concealed
// behind it.
package pact
