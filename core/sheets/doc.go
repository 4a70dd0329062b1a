// Package sheets stores spreadsheet-like worksheets in a relational database.
//
// A Book is a set of named worksheets. Each worksheet is a grid of text rows
// addressed by 1-based row index, where row 1 holds the column headers. Rows
// are kept as JSON arrays in a single column so that worksheets of any width
// share one table.
//
// The operations mirror what a spreadsheet API offers:
//
//   - read all data rows as header-keyed records
//   - write a row at an index, or many rows in one batch
//   - append rows after the last one
//   - delete a row, shifting the following rows up
//   - resize the column count, clear all rows
//
// Records fails with ErrDuplicateHeaders when the header row has repeated or
// blank names, since keyed access would be ambiguous.
package sheets
