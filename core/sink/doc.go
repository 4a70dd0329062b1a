// Package sink buffers row writes for a worksheet and emits them in batches.
//
// Writes for rows that already exist are queued as updates at their index;
// writes without an index are queued as appends. Flush sends one batch update
// followed by one append and only then drops the buffers, so a failed flush
// can be retried without losing rows.
package sink
