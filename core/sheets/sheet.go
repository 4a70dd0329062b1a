package sheets

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HeaderRow is the index of the header row.
const HeaderRow = 1

// Record is a data row keyed by header.
type Record struct {
	// Index is the 1-based row index in the worksheet.
	Index  int
	Values map[string]string
}

// Get returns the value under header, or "".
func (r Record) Get(header string) string {
	return r.Values[header]
}

// RowUpdate writes Values at RowIndex.
type RowUpdate struct {
	RowIndex int
	Values   []string
}

// Sheet is an open worksheet.
type Sheet struct {
	db *gorm.DB
	ws Worksheet
}

// Title returns the worksheet title.
func (s *Sheet) Title() string {
	return s.ws.Title
}

// ColCount returns the number of columns.
func (s *Sheet) ColCount() int {
	return s.ws.ColCount
}

// Headers returns the header row, or nil when the sheet is empty.
func (s *Sheet) Headers(ctx context.Context) ([]string, error) {
	var row SheetRow
	err := s.db.WithContext(ctx).
		Where("worksheet_id = ? AND row_index = ?", s.ws.ID, HeaderRow).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read headers of %s: %w", s.ws.Title, err)
	}
	return []string(row.Values), nil
}

// SetHeaders writes the header row.
func (s *Sheet) SetHeaders(ctx context.Context, headers []string) error {
	return s.UpdateRow(ctx, HeaderRow, headers)
}

// Rows returns every row including the header, ordered by index.
func (s *Sheet) Rows(ctx context.Context) ([]SheetRow, error) {
	var rows []SheetRow
	err := s.db.WithContext(ctx).
		Where("worksheet_id = ?", s.ws.ID).
		Order("row_index ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", s.ws.Title, err)
	}
	return rows, nil
}

// Records returns all data rows keyed by the header row.
func (s *Sheet) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.Rows(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].RowIndex != HeaderRow {
		return nil, nil
	}

	headers := []string(rows[0].Values)
	if err := checkHeaders(headers); err != nil {
		return nil, fmt.Errorf("%s: %w", s.ws.Title, err)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		values := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row.Values) {
				values[h] = row.Values[i]
			} else {
				values[h] = ""
			}
		}
		records = append(records, Record{Index: row.RowIndex, Values: values})
	}
	return records, nil
}

// checkHeaders reports ErrDuplicateHeaders for blank or repeated names.
func checkHeaders(headers []string) error {
	seen := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		if h == "" {
			return ErrDuplicateHeaders
		}
		if _, ok := seen[h]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateHeaders, h)
		}
		seen[h] = struct{}{}
	}
	return nil
}

// UpdateRow writes values at index, creating the row if needed.
func (s *Sheet) UpdateRow(ctx context.Context, index int, values []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.writeRow(tx, index, values)
	})
}

// BatchUpdate writes all updates in one transaction.
func (s *Sheet) BatchUpdate(ctx context.Context, updates []RowUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := s.writeRow(tx, u.RowIndex, u.Values); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Sheet) writeRow(tx *gorm.DB, index int, values []string) error {
	if index < HeaderRow {
		return fmt.Errorf("invalid row index %d", index)
	}
	values = s.fit(values)

	var row SheetRow
	err := tx.Where("worksheet_id = ? AND row_index = ?", s.ws.ID, index).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = SheetRow{WorksheetID: s.ws.ID, RowIndex: index, Values: datatypes.JSONSlice[string](values)}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert row %d of %s: %w", index, s.ws.Title, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read row %d of %s: %w", index, s.ws.Title, err)
	}

	row.Values = datatypes.JSONSlice[string](values)
	if err := tx.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to update row %d of %s: %w", index, s.ws.Title, err)
	}
	return nil
}

// AppendRows adds rows after the last one and returns the index of the first.
func (s *Sheet) AppendRows(ctx context.Context, rows [][]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var first int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		last, err := s.lastIndex(tx)
		if err != nil {
			return err
		}
		first = last + 1

		batch := make([]SheetRow, 0, len(rows))
		for i, values := range rows {
			batch = append(batch, SheetRow{
				WorksheetID: s.ws.ID,
				RowIndex:    first + i,
				Values:      datatypes.JSONSlice[string](s.fit(values)),
			})
		}
		if err := tx.Create(&batch).Error; err != nil {
			return fmt.Errorf("failed to append rows to %s: %w", s.ws.Title, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return first, nil
}

func (s *Sheet) lastIndex(tx *gorm.DB) (int, error) {
	var last int64
	err := tx.Model(&SheetRow{}).
		Where("worksheet_id = ?", s.ws.ID).
		Select("COALESCE(MAX(row_index), 0)").
		Row().
		Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("failed to find last row of %s: %w", s.ws.Title, err)
	}
	return int(last), nil
}

// DeleteRow removes the row at index and shifts the following rows up.
func (s *Sheet) DeleteRow(ctx context.Context, index int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("worksheet_id = ? AND row_index = ?", s.ws.ID, index).Delete(&SheetRow{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete row %d of %s: %w", index, s.ws.Title, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("row %d of %s does not exist", index, s.ws.Title)
		}
		err := tx.Model(&SheetRow{}).
			Where("worksheet_id = ? AND row_index > ?", s.ws.ID, index).
			Update("row_index", gorm.Expr("row_index - 1")).Error
		if err != nil {
			return fmt.Errorf("failed to shift rows of %s: %w", s.ws.Title, err)
		}
		return nil
	})
}

// Resize sets the column count, truncating wider rows.
func (s *Sheet) Resize(ctx context.Context, cols int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&s.ws).Update("col_count", cols).Error; err != nil {
			return fmt.Errorf("failed to resize %s: %w", s.ws.Title, err)
		}
		s.ws.ColCount = cols

		var rows []SheetRow
		if err := tx.Where("worksheet_id = ?", s.ws.ID).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			if len(row.Values) <= cols {
				continue
			}
			row.Values = row.Values[:cols]
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear removes every row, including the header.
func (s *Sheet) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Where("worksheet_id = ?", s.ws.ID).Delete(&SheetRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", s.ws.Title, err)
	}
	return nil
}

// fit truncates values to the column count; a zero count means unbounded.
func (s *Sheet) fit(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	if s.ws.ColCount > 0 && len(out) > s.ws.ColCount {
		out = out[:s.ws.ColCount]
	}
	return out
}
