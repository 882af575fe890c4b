// Package main hosts the ytmeta CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into metadata
// resolution runs, backend searches, cache maintenance, cookie checks, and
// configuration scaffolding. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
package main
