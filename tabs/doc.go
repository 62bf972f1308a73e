// Package tabs contains the four widget views mounted by core: alarm,
// stopwatch, timer and weather. Each view wraps a domain state machine from
// internal/ and owns its tick loop.
//
// Allowed here:
// - key handling, tick scheduling and layout for one widget
// - best-effort side effects (notifications, journal writes) as commands
//
// Not allowed here:
// - shared app routing logic (core) or low-level drawing primitives (widgets)
package tabs
