// Package sales maintains the sales history sheet: one row per player and
// rarity with up to MaxEvents recent sales, today's sale counts and trailing
// average prices.
//
// # Pass
//
// Every invocation first checks the sheet (EnsureSheet):
//
//   - missing: created with the expected headers
//   - blank or repeated headers: deleted and recreated, and the checkpoint is
//     discarded since its row references are void
//   - other headers or width: resized and the header row rewritten in place
//
// The pass itself is a resumable batch (see package batch). The work list is
// the set of distinct (player slug, lower-cased rarity) pairs of the main
// sheet. Each pair is handed to the reconcile engine together with its
// persisted history; the merged result is queued in a sink.Writer as an
// update of the existing row or as a new row.
//
// Prepare re-reads the sales sheet on every invocation, so a pair appended
// before a checkpoint is updated, not appended again, after resumption.
package sales
