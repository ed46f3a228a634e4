// Package formatters provides the built-in formatter plugins wrapping
// external code-rewriting tools.
package formatters
