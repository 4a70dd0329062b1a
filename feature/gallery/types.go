package gallery

import (
	"time"

	"card-tracker/core/sheets"
	"card-tracker/core/sorare"
)

// Operation is the name of the gallery sync.
const Operation = "sync"

// ActionType represents the type of sheet mutation.
type ActionType string

const (
	// ActionAppendRow adds a row for a card that is not in the sheet yet.
	ActionAppendRow ActionType = "append_row"
	// ActionDeleteRow removes the row of a card no longer owned, or a
	// duplicate row of an owned card.
	ActionDeleteRow ActionType = "delete_row"
)

// Action represents a planned mutation of the main sheet.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the card slug.
	Key string `json:"key"`

	// RowIndex is the row to delete. Only set for ActionDeleteRow.
	RowIndex int `json:"row_index,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Card is the gallery card to append. Only set for ActionAppendRow.
	Card *sorare.Card `json:"-"`
}

// Plan contains the planned actions of one sync.
type Plan struct {
	// Actions lists deletions first, highest row first, then appends.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`

	sheet *sheets.Sheet
}

// Summary provides aggregate statistics for a sync.
type Summary struct {
	// GalleryCards is the number of distinct cards owned.
	GalleryCards int `json:"gallery_cards"`

	// SheetRows is the number of card rows found in the sheet.
	SheetRows int `json:"sheet_rows"`

	// ToAdd counts planned appends.
	ToAdd int `json:"to_add"`

	// ToDelete counts planned deletions.
	ToDelete int `json:"to_delete"`

	// Added counts rows appended by Apply.
	Added int `json:"added"`

	// Deleted counts rows removed by Apply.
	Deleted int `json:"deleted"`

	// FailedDeletes counts deletions that failed and were left in place.
	FailedDeletes int `json:"failed_deletes"`
}

// Options controls sync behavior.
type Options struct {
	// DryRun plans without touching the sheet.
	DryRun bool

	// PagePause is slept between gallery pages.
	PagePause time.Duration

	// DeletePause is slept between row deletions.
	DeletePause time.Duration
}
