// Package wren generates per-iteration .properties files for nested-loop
// simulation runs.
package wren

// Version is the current wren release.
const Version = "0.3.0"
