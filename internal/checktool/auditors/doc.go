// Package auditors provides the built-in auditor plugins wrapping external
// non-destructive linting tools.
package auditors
