package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"card-tracker/core/config"
	"card-tracker/core/database"
	"card-tracker/core/reconcile"
	"card-tracker/core/sheets"
	"card-tracker/core/sorare"
	"card-tracker/feature/sales"

	"go.uber.org/zap"
)

// Reconciles one player and rarity without writing to the sheet.
//
//	debug_sales <player-slug> <rarity>
func main() {
	if len(os.Args) != 3 {
		log.Fatal("usage: debug_sales <player-slug> <rarity>")
	}
	pair := sales.Pair{PlayerSlug: os.Args[1], Rarity: strings.ToLower(os.Args[2])}

	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(config.OpUpdateSales); err != nil {
		log.Fatal(err)
	}
	loc, err := cfg.Jobs.Location()
	if err != nil {
		log.Fatal(err)
	}

	// Connect to DB
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	book := sheets.NewBook(db)
	ctx := context.Background()

	engine := reconcile.NewEngine(reconcile.Options{
		FreshLimit:   cfg.Jobs.SalesFetchLimit,
		InitialLimit: cfg.Jobs.SalesInitialFetchLimit,
		MaxEvents:    cfg.Jobs.MaxSales,
		Correction:   cfg.Jobs.PriceCorrection,
		Location:     loc,
	}, zap.NewNop())
	client := sorare.NewClient(cfg.Sorare, zap.NewNop())

	// Step 1: Stored history
	fmt.Println("=== STEP 1: Stored history ===")
	prior, err := storedHistory(ctx, book, pair, cfg.Jobs.MaxSales)
	if err != nil {
		log.Fatal(err)
	}
	if prior == nil {
		fmt.Println("No row for this pair, cold start")
	} else {
		fmt.Printf("Row %d with %d stored sales\n", prior.RowIndex, len(prior.Sales))
	}
	fmt.Printf("Fetch limit: %d\n", engine.FetchLimit(prior))

	// Step 2: Merge
	fmt.Println("\n=== STEP 2: Merge ===")
	merged, err := engine.Reconcile(ctx, pair.Key(), prior, func(ctx context.Context, limit int) ([]reconcile.SaleEvent, error) {
		prices, err := client.TokenPrices(ctx, pair.PlayerSlug, pair.Rarity, limit)
		if err != nil {
			return nil, err
		}
		return sales.Events(prices), nil
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Fresh: %d, merged: %d, unverified: %d, dropped: %d\n",
		merged.Fresh, len(merged.Events), merged.Unverified, merged.Dropped)
	for _, c := range merged.Corrections {
		fmt.Printf("CORRECTED sale at %s: %.2f -> %.2f\n",
			time.UnixMilli(c.Timestamp).In(loc).Format(reconcile.DateLayout), c.From, c.To)
	}

	// Step 3: Row that would be written
	fmt.Println("\n=== STEP 3: Row ===")
	row := sales.BuildRow(engine, pair, merged.Events, time.Now())
	headers := sales.Headers(cfg.Jobs.MaxSales)
	out := make(map[string]string, len(row))
	for i, v := range row {
		if v != "" && i < len(headers) {
			out[headers[i]] = v
		}
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(data))
}

func storedHistory(ctx context.Context, book *sheets.Book, pair sales.Pair, maxSales int) (*reconcile.PriorRecord, error) {
	sheet, err := book.Worksheet(ctx, sales.SheetTitle)
	if errors.Is(err, sheets.ErrWorksheetNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	records, err := sheet.Records(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Get(sales.ColPlayerSlug) == pair.PlayerSlug && strings.EqualFold(rec.Get(sales.ColRarity), pair.Rarity) {
			return sales.Prior(rec, maxSales), nil
		}
	}
	return nil, nil
}
