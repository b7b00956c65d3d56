// Package logging provides a unified logging interface for rootcalc.
// Components log through Logger, backed by zerolog (JSON lines for the CLI
// and REPL) or slog with a tint console handler (the HTTP server).
package logging
