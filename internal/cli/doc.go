// Package cli wires the cobra command tree: generate, validate, init,
// types, config, and version.
package cli
