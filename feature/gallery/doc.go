// Package gallery keeps the rows of the main sheet aligned with the cards the
// user owns.
//
// A sync is split in two steps, so that it can be previewed:
//
//   - BuildPlan fetches every gallery page and compares the card slugs with
//     the sheet, producing delete actions for cards no longer owned (and for
//     duplicate rows) and append actions for new cards.
//   - Apply deletes rows from the highest index down, pausing between
//     deletions, then appends the new rows in one batch. New rows only carry
//     the gallery fields; package cards fills in the rest.
//
// A failure on any gallery page aborts the sync before the sheet is touched,
// so a partial listing never deletes rows.
package gallery
