// Package core owns the view dispatcher: which widget is mounted, how
// orientation readings and navigation switch it, and the message contracts
// shared by views and overlay screens.
//
// Allowed here:
// - model routing, message contracts, command and key registries
// - mount generations and orientation/sensor polling
//
// Not allowed here:
// - widget domain logic (alarm, stopwatch, timer, weather)
// - concrete screen/modal rendering implementations
// - low-level widget rendering primitives
package core
