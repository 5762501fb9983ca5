// Package scenario runs declarative delegation scenarios against pact
// contracts. A scenario file (TOML) names the contract the host reference is
// typed as, the operation a trigger dispatches, a cast of conformers drawn
// from a catalog, and an ordered list of host steps:
//   - acquire stores a cast member in the host's slot, replacing any
//     previous delegate.
//   - trigger dispatches the designated operation to the current delegate
//     and records the branch its boolean answer selects; with an empty slot
//     it records the fallback branch instead.
//   - clear empties the slot.
//
// The cast is assembled and verified before the first step executes, so a
// non-conforming cast member stops a run from ever starting. The built-in
// catalog ships a courier contract with three conformer kinds (bike, drone,
// pager) used by the demo scenario and the playground.
package scenario
