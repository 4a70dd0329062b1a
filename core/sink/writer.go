package sink

import (
	"context"
	"fmt"

	"card-tracker/core/sheets"
)

// Target is the worksheet surface the writer needs.
type Target interface {
	BatchUpdate(ctx context.Context, updates []sheets.RowUpdate) error
	AppendRows(ctx context.Context, rows [][]string) (int, error)
}

// Writer buffers row writes for one worksheet.
type Writer struct {
	target  Target
	updates []sheets.RowUpdate
	appends [][]string
}

// NewWriter creates a writer for target.
func NewWriter(target Target) *Writer {
	return &Writer{target: target}
}

// Put queues values for rowIndex, or for appending when rowIndex is zero.
func (w *Writer) Put(rowIndex int, values []string) {
	if rowIndex > 0 {
		w.updates = append(w.updates, sheets.RowUpdate{RowIndex: rowIndex, Values: values})
		return
	}
	w.appends = append(w.appends, values)
}

// Pending returns the number of queued updates and appends.
func (w *Writer) Pending() (updates, appends int) {
	return len(w.updates), len(w.appends)
}

// Flush writes queued updates, then queued appends.
func (w *Writer) Flush(ctx context.Context) error {
	if len(w.updates) > 0 {
		if err := w.target.BatchUpdate(ctx, w.updates); err != nil {
			return fmt.Errorf("failed to write %d row updates: %w", len(w.updates), err)
		}
		w.updates = nil
	}
	if len(w.appends) > 0 {
		if _, err := w.target.AppendRows(ctx, w.appends); err != nil {
			return fmt.Errorf("failed to append %d rows: %w", len(w.appends), err)
		}
		w.appends = nil
	}
	return nil
}
