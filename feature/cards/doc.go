// Package cards keeps the main sheet of owned cards up to date.
//
// The main sheet has one row per card in the user's gallery, keyed by card
// slug. Package gallery adds and removes rows; this package fills in the
// columns that need a details query: level and XP, the live sale price, the
// six price floors, recent SO5 form, injuries and suspensions, the next game
// and its projection.
//
// # Update Pass
//
// The update pass is a resumable batch (see package batch):
//
//  1. Plan selects rows whose "Last Updated" is empty, unreadable or older
//     than the refresh interval.
//  2. Prepare re-reads the sheet by slug, since a sync may have shifted rows
//     between two invocations, and fetches the conversion rates once.
//  3. Process queries the card, then the projection of its next game. A
//     failed projection only blanks the projection columns.
//  4. Rows are buffered in a sink.Writer and written when the runner
//     flushes, before every checkpoint and at completion.
//
// Absent API values render as empty cells; a present zero renders as zero.
package cards
