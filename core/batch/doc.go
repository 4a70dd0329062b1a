// Package batch runs resumable, time-boxed passes over a list of work items.
//
// A pass is described by a Job. The Runner asks the job for its work list on
// a fresh start, stores it in a checkpoint, and then walks the list in order,
// stopping when the Budget runs out. Before it stops it flushes the job's
// pending writes and records the index of the next item, so the following
// invocation continues from there with the same work list.
//
// # Lifecycle
//
//	fresh start    Plan -> save {0, items, state} -> process 0..K
//	resumed        load {i, items, state}         -> process i..K
//	budget spent   Flush -> save {j, items, state} -> return Suspended
//	completed      Flush -> clear checkpoint
//
// A flush failure aborts the run without advancing the checkpoint, so the
// items since the last successful save are processed again next time.
//
// # Budget
//
// The Budget is checked between items only. An item already in flight is
// always finished. Cancelling the context the Budget was built from (for
// example on SIGTERM) makes it report exhaustion, so a signal produces the
// same checkpoint-and-exit as a timeout.
package batch
