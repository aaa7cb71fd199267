// Package textops provides an ordered, mutable pipeline of configurable
// text operations and a deterministic executor for it.
//
// A Pipeline owns a sequence of steps, each an independently toggleable
// instance of an operation kind from an op.Registry. Every mutation
// (add, remove, toggle, update, reorder) validates first and commits
// only on success, so the pipeline never holds an invalid step. The
// Executor applies the enabled steps in order to an input text,
// isolating per-step failures: a failing step leaves the text unchanged
// and is reported in the run's diagnostics instead of aborting the run.
//
// Cross-cutting concerns attach as observers: the measure package
// aggregates per-step durations across runs and the drawer package
// renders a run as a DOT graph. The preview package adds debounced,
// last-request-wins recomputation on top of the executor.
package textops
