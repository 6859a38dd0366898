// Package cli parses command-line arguments into an app.Config, validates
// them, and reports usage problems as ExitError values carrying the process
// exit code.
package cli
