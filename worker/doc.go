// Package worker implements the poll-acquire-execute loop that runs
// shell-command jobs pulled from a store.Store.
//
// A Worker is single-threaded with respect to the job it runs: it
// acquires at most one job at a time, executes it as a subprocess, and
// reports the outcome before polling again. This differs from a
// concurrent worker pool; queuectl workers are meant to be scaled by
// running more worker processes, not more goroutines per process.
package worker
