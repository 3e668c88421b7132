// Package cli implements the permgroup command-line interface.
//
// The commands build stabilizer chains from group definitions and query
// them: orders, orbits, membership, chain structure and element listings.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - info: Summarize a group (order, base, orbit lengths, strong generators)
//   - orbit, member, chain, elements: Query a group
//   - render: Draw the Schreier trees of the chain as DOT or SVG
//   - explore: Browse the chain interactively
//   - serve: Run the HTTP API
//   - cache: Manage the summary cache
//
// # Groups
//
// Every group command takes either a definition file (TOML, YAML or JSON)
// or an inline group given by --degree and one --gen per generator:
//
//	permgroup info s5.toml
//	permgroup info -n 5 -g "(0 1)" -g "(0 1 2 3 4)"
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/permgroup/config.toml when it
// exists. Flags override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli
