package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"nexuspos/internal/domain"
	"nexuspos/internal/excel"
)

type InventorySummary struct {
	TotalProducts    int     `json:"total_products"`
	TotalUnits       int     `json:"total_units"`
	StockValueCost   float64 `json:"stock_value_cost"`
	StockValueRetail float64 `json:"stock_value_retail"`
	Receivables      float64 `json:"receivables"`
}

// InventorySummary aggregates the current snapshot. Receivables is the sum
// of debt owed to the business (negative client balances), reported positive.
func (s *Service) InventorySummary() InventorySummary {
	summary := InventorySummary{}
	for _, p := range s.snap.Products() {
		summary.TotalProducts++
		summary.TotalUnits += p.Stock
		summary.StockValueCost += float64(p.Stock) * p.Cost
		summary.StockValueRetail += float64(p.Stock) * p.Price
	}
	for _, c := range s.snap.Clients() {
		if c.Balance < 0 {
			summary.Receivables += -c.Balance
		}
	}
	summary.StockValueCost = domain.Round2(summary.StockValueCost)
	summary.StockValueRetail = domain.Round2(summary.StockValueRetail)
	summary.Receivables = domain.Round2(summary.Receivables)
	return summary
}

// LowStock returns snapshot products at or below their alert threshold.
func (s *Service) LowStock() []domain.Product {
	low := make([]domain.Product, 0)
	for _, p := range s.snap.Products() {
		if p.Stock <= p.MinStock {
			low = append(low, p)
		}
	}
	return low
}

// BuildInventoryReport reads the store directly (not the snapshot, which may
// be empty in CLI use) and renders the Excel workbook.
func (s *Service) BuildInventoryReport(ctx context.Context) (*excelize.File, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	movements, err := s.store.ListRecentMovements(ctx, 50)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return excel.BuildInventoryReport(products, movements, s.settings.Get())
}
