// Package job defines the stateful representation of a unit of work
// managed by the queuectl coordination engine.
//
// A Job is a shell command together with its delivery state: lifecycle
// state, retry bookkeeping, scheduling metadata and the outcome of its
// last attempt. Job values returned by a store are snapshots; mutating
// them does not change the underlying queue. Transitions are only
// performed through the store's operations (Enqueue, Acquire, Complete,
// Fail, DLQRetry).
package job
