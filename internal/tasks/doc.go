// Package tasks runs the optional setup steps that follow materialization:
// dependency installation through the configured package manager and
// version-control initialization, either with the git binary or in-process.
//
// Every step reports a Result instead of an error. A failed step is never
// fatal to the run; the caller decides whether to warn and continue.
package tasks
