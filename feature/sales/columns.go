package sales

import (
	"fmt"

	"card-tracker/core/reconcile"
)

// SheetTitle is the worksheet holding one row per player and rarity.
const SheetTitle = "Sales History"

// Sales sheet columns.
const (
	ColPlayerName    = "Player Name"
	ColPlayerSlug    = "Player API Slug"
	ColRarity        = "Rarity Searched"
	ColTodayInSeason = "Sales Today (In-Season)"
	ColTodayClassic  = "Sales Today (Classic)"
	ColLastUpdated   = "Last Updated"
)

// AvgColumns returns the average price columns of a window.
func AvgColumns(days int) (inSeason, classic string) {
	return fmt.Sprintf("Avg Price %dd (In-Season)", days), fmt.Sprintf("Avg Price %dd (Classic)", days)
}

// SaleColumns returns the columns of the j-th sale, 1-based.
func SaleColumns(j int) (date, price, eligibility string) {
	return fmt.Sprintf("Sale %d Date", j), fmt.Sprintf("Sale %d Price (EUR)", j), fmt.Sprintf("Sale %d Eligibility", j)
}

// Headers returns the header row for a history of maxSales sales.
func Headers(maxSales int) []string {
	headers := []string{ColPlayerName, ColPlayerSlug, ColRarity, ColTodayInSeason, ColTodayClassic}
	for _, days := range reconcile.Windows {
		in, cl := AvgColumns(days)
		headers = append(headers, in, cl)
	}
	for j := 1; j <= maxSales; j++ {
		d, p, e := SaleColumns(j)
		headers = append(headers, d, p, e)
	}
	return append(headers, ColLastUpdated)
}
