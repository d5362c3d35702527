package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"nexuspos/internal/domain"
)

const (
	productsSheet  = "Products"
	movementsSheet = "Stock Movements"
)

// BuildInventoryReport renders the catalog and recent stock movements into a
// two-sheet workbook. The caller owns writing/closing the file.
func BuildInventoryReport(products []domain.Product, movements []domain.StockMovement, settings domain.AppSettings) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", productsSheet); err != nil {
		return nil, fmt.Errorf("rename products sheet: %w", err)
	}
	if _, err := f.NewSheet(movementsSheet); err != nil {
		return nil, fmt.Errorf("create movements sheet: %w", err)
	}

	productHeader := []any{
		"SKU", "Name", "Category",
		fmt.Sprintf("Price (%s)", settings.Currency),
		fmt.Sprintf("Cost (%s)", settings.Currency),
		"Stock", "Min Stock", "Unit",
	}
	if err := f.SetSheetRow(productsSheet, "A1", &productHeader); err != nil {
		return nil, fmt.Errorf("write products header: %w", err)
	}
	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("products cell: %w", err)
		}
		row := []any{p.SKU, p.Name, p.Category, p.Price, p.Cost, p.Stock, p.MinStock, p.Unit}
		if err := f.SetSheetRow(productsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write product row %d: %w", i+1, err)
		}
	}

	movementHeader := []any{"Date", "Product", "Type", "Quantity", "Note"}
	if err := f.SetSheetRow(movementsSheet, "A1", &movementHeader); err != nil {
		return nil, fmt.Errorf("write movements header: %w", err)
	}
	for i, m := range movements {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("movements cell: %w", err)
		}
		note := ""
		if m.Note != nil {
			note = *m.Note
		}
		row := []any{m.Date.Format("2006-01-02 15:04"), m.ProductName, m.Type, m.Quantity, note}
		if err := f.SetSheetRow(movementsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write movement row %d: %w", i+1, err)
		}
	}

	return f, nil
}
