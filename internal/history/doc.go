// Package history records successful resolutions in a local SQLite database
// for later inspection from the CLI.
package history
