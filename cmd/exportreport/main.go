// Command exportreport connects to the store and writes the inventory Excel
// report to a file, for use outside the web UI (cron, backups).
package main

import (
	"context"
	"flag"
	"log"

	"nexuspos/internal/config"
	"nexuspos/internal/db"
	"nexuspos/internal/excel"
	"nexuspos/internal/repository"
)

func main() {
	output := flag.String("o", "inventory.xlsx", "output file path")
	movementLimit := flag.Int("movements", 50, "number of recent stock movements to include")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer pool.Close()

	repo := repository.New(pool)
	products, err := repo.ListProducts(ctx)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}
	movements, err := repo.ListRecentMovements(ctx, *movementLimit)
	if err != nil {
		log.Fatalf("list movements: %v", err)
	}

	report, err := excel.BuildInventoryReport(products, movements, cfg.Settings)
	if err != nil {
		log.Fatalf("build report: %v", err)
	}
	if err := report.SaveAs(*output); err != nil {
		log.Fatalf("save report: %v", err)
	}
	log.Printf("wrote %s (%d products, %d movements)", *output, len(products), len(movements))
}
