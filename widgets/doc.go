// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (pane chrome, stacks, popup overlay,
//   flip digits, progress ring)
//
// Not allowed here:
// - key handling, view state transitions, timers or I/O
package widgets
