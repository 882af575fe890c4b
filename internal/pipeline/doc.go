// Package pipeline wires identification, search, caching, mapping, and
// refinement into the resolution flow used by the CLI.
package pipeline
