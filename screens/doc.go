// Package screens holds the overlays pushed on top of the mounted view:
// the route picker, the command palette and the history list.
//
// Screens implement core.Screen and resolve keys through the core key
// registry. Layout primitives live in widgets.
package screens
