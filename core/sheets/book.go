package sheets

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrWorksheetNotFound is returned when a worksheet title is unknown.
	ErrWorksheetNotFound = errors.New("worksheet not found")
	// ErrDuplicateHeaders is returned when the header row is ambiguous.
	ErrDuplicateHeaders = errors.New("worksheet has duplicate or empty headers")
)

// Book gives access to the worksheets stored in a database.
type Book struct {
	db *gorm.DB
}

// NewBook wraps db.
func NewBook(db *gorm.DB) *Book {
	return &Book{db: db}
}

// Migrate creates the worksheet tables.
func (b *Book) Migrate(ctx context.Context) error {
	if err := b.db.WithContext(ctx).AutoMigrate(&Worksheet{}, &SheetRow{}); err != nil {
		return fmt.Errorf("failed to migrate sheet tables: %w", err)
	}
	return nil
}

// Worksheet opens the worksheet with the given title.
func (b *Book) Worksheet(ctx context.Context, title string) (*Sheet, error) {
	var ws Worksheet
	err := b.db.WithContext(ctx).Where("title = ?", title).First(&ws).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrWorksheetNotFound, title)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open worksheet %s: %w", title, err)
	}
	return &Sheet{db: b.db, ws: ws}, nil
}

// AddWorksheet creates an empty worksheet with cols columns.
func (b *Book) AddWorksheet(ctx context.Context, title string, cols int) (*Sheet, error) {
	ws := Worksheet{Title: title, ColCount: cols}
	if err := b.db.WithContext(ctx).Create(&ws).Error; err != nil {
		return nil, fmt.Errorf("failed to create worksheet %s: %w", title, err)
	}
	return &Sheet{db: b.db, ws: ws}, nil
}

// DeleteWorksheet removes a worksheet and all its rows.
func (b *Book) DeleteWorksheet(ctx context.Context, title string) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ws Worksheet
		err := tx.Where("title = ?", title).First(&ws).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrWorksheetNotFound, title)
		}
		if err != nil {
			return err
		}
		if err := tx.Where("worksheet_id = ?", ws.ID).Delete(&SheetRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete rows of %s: %w", title, err)
		}
		return tx.Delete(&ws).Error
	})
}

// OpenOrCreate opens the worksheet, creating it with headers when missing.
// created reports whether the worksheet was new.
func (b *Book) OpenOrCreate(ctx context.Context, title string, headers []string) (sheet *Sheet, created bool, err error) {
	sheet, err = b.Worksheet(ctx, title)
	if err == nil {
		return sheet, false, nil
	}
	if !errors.Is(err, ErrWorksheetNotFound) {
		return nil, false, err
	}

	sheet, err = b.AddWorksheet(ctx, title, len(headers))
	if err != nil {
		return nil, false, err
	}
	if err := sheet.SetHeaders(ctx, headers); err != nil {
		return nil, false, err
	}
	return sheet, true, nil
}
