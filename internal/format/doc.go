// Package format implements the CLI command that rewrites targets with the
// selected formatters, or verifies them without rewriting when asked.
package format
