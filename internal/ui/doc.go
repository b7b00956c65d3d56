// Package ui provides theme and color support for terminal output. The CLI,
// the REPL and the dashboard read their colors from the active theme.
package ui
