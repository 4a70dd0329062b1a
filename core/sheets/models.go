package sheets

import (
	"time"

	"gorm.io/datatypes"
)

// Worksheet is a named grid in the book.
type Worksheet struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:191;uniqueIndex;not null"`
	ColCount  int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Worksheet) TableName() string {
	return "worksheets"
}

// SheetRow is one row of a worksheet.
type SheetRow struct {
	ID          uint `gorm:"primaryKey"`
	WorksheetID uint `gorm:"not null;index:idx_sheet_row,priority:1"`
	RowIndex    int  `gorm:"not null;index:idx_sheet_row,priority:2"`
	Values      datatypes.JSONSlice[string]
	UpdatedAt   time.Time
}

func (SheetRow) TableName() string {
	return "sheet_rows"
}
