// Package orchestrate fans plugin invocations out over requested targets and
// streams results back as they are produced.
package orchestrate
