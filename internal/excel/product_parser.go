package excel

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"nexuspos/internal/domain"
)

var headerAliases = map[string]string{
	"sku":       "sku",
	"name":      "name",
	"product":   "name",
	"category":  "category",
	"price":     "price",
	"sale":      "price",
	"cost":      "cost",
	"stock":     "stock",
	"quantity":  "stock",
	"qty":       "stock",
	"min_stock": "min_stock",
	"min stock": "min_stock",
	"unit":      "unit",
}

// ParseProductRows reads a product sheet from the first worksheet. The
// header row is matched case-insensitively through aliases; name is the only
// required column.
func ParseProductRows(reader io.Reader) ([]domain.ProductImportRow, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet has no data rows")
	}

	columns := map[string]int{}
	for i, raw := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(raw))
		if canonical, ok := headerAliases[key]; ok {
			if _, seen := columns[canonical]; !seen {
				columns[canonical] = i
			}
		}
	}
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("sheet is missing a name column")
	}

	out := make([]domain.ProductImportRow, 0, len(rows)-1)
	for rowNo, row := range rows[1:] {
		name := strings.TrimSpace(cellAt(row, columns, "name"))
		if name == "" {
			continue
		}

		price, err := parseFloatCell(cellAt(row, columns, "price"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price: %w", rowNo+2, err)
		}
		cost, err := parseFloatCell(cellAt(row, columns, "cost"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid cost: %w", rowNo+2, err)
		}
		stock, err := parseIntCell(cellAt(row, columns, "stock"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid stock: %w", rowNo+2, err)
		}
		minStock, err := parseIntCell(cellAt(row, columns, "min_stock"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid min_stock: %w", rowNo+2, err)
		}

		out = append(out, domain.ProductImportRow{
			SKU:      strings.TrimSpace(cellAt(row, columns, "sku")),
			Name:     name,
			Category: strings.TrimSpace(cellAt(row, columns, "category")),
			Price:    price,
			Cost:     cost,
			Stock:    stock,
			MinStock: minStock,
			Unit:     strings.TrimSpace(cellAt(row, columns, "unit")),
		})
	}
	return out, nil
}

func cellAt(row []string, columns map[string]int, key string) string {
	i, ok := columns[key]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseFloatCell(raw string) (float64, error) {
	value := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if parsed < 0 || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, fmt.Errorf("out of range: %q", raw)
	}
	return parsed, nil
}

func parseIntCell(raw string) (int, error) {
	value := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return int(math.Round(parsed)), nil
}
