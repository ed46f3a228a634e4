// Package audit implements the CLI command that runs non-destructive quality
// checks over requested targets and writes the aggregated report.
package audit
