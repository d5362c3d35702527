package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"nexuspos/internal/domain"
)

// AddProduct inserts a catalog entry. A non-zero initial stock gets one
// restock ledger entry so the movement sum reconciles from day one.
func (s *Service) AddProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	created, err := s.addProduct(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	s.refresh(ctx)
	return created, nil
}

func (s *Service) addProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Unit == "" {
		p.Unit = "pcs"
	}
	if p.MinStock == 0 {
		p.MinStock = s.settings.Get().DefaultMinStock
	}

	created, err := s.store.InsertProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("add product: %w", err)
	}

	if created.Stock != 0 {
		note := "Initial entry"
		if err := s.RecordMovement(ctx, created.ID, domain.MovementRestock, created.Stock, &note); err != nil {
			return domain.Product{}, fmt.Errorf("record initial stock for product %s: %w", created.ID, err)
		}
	}
	return created, nil
}

// EditProduct writes the full updated row. If the stock changed against the
// previously known snapshot value, one movement is ledgered for the delta.
func (s *Service) EditProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	prev := s.snap.Product(p.ID)
	if prev == nil {
		return nil, ErrProductNotFound
	}
	delta := p.Stock - prev.Stock

	updated, err := s.store.UpdateProduct(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("edit product %s: %w", p.ID, err)
	}

	if delta != 0 {
		note := "Product edit"
		if err := s.RecordMovement(ctx, p.ID, domain.ManualMovementType(delta), delta, &note); err != nil {
			return nil, fmt.Errorf("record stock edit for product %s: %w", p.ID, err)
		}
	}
	s.refresh(ctx)
	return updated, nil
}

// DeleteProduct removes the catalog row. Historical order items and
// movements referencing the id are left in place and render as
// "Unknown Product" in joined reads.
func (s *Service) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.store.DeleteProduct(ctx, productID); err != nil {
		return fmt.Errorf("delete product %s: %w", productID, err)
	}
	s.refresh(ctx)
	return nil
}

// UpdateStock sets a product's stock to an absolute value, ledgering the
// delta against the previously known snapshot stock. No-op when the delta is
// zero.
func (s *Service) UpdateStock(ctx context.Context, productID string, newStock int) error {
	prev := s.snap.Product(productID)
	if prev == nil {
		return ErrProductNotFound
	}
	delta := newStock - prev.Stock
	if delta == 0 {
		return nil
	}

	if _, err := s.store.AdjustProductStock(ctx, productID, delta); err != nil {
		return fmt.Errorf("update stock for product %s: %w", productID, err)
	}
	note := "Manual update"
	if err := s.RecordMovement(ctx, productID, domain.ManualMovementType(delta), delta, &note); err != nil {
		return fmt.Errorf("record manual update for product %s: %w", productID, err)
	}
	s.refresh(ctx)
	return nil
}

// ImportProducts creates catalog entries from parsed spreadsheet rows via
// the normal add path, so initial-stock movements are ledgered. One refresh
// at the end covers the whole batch.
func (s *Service) ImportProducts(ctx context.Context, rows []domain.ProductImportRow) (int, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("import file has no data rows")
	}

	imported := 0
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		if _, err := s.addProduct(ctx, domain.Product{
			SKU:      row.SKU,
			Name:     name,
			Category: row.Category,
			Price:    row.Price,
			Cost:     row.Cost,
			Stock:    row.Stock,
			MinStock: row.MinStock,
			Unit:     row.Unit,
		}); err != nil {
			return imported, fmt.Errorf("import row %q: %w", name, err)
		}
		imported++
	}
	s.refresh(ctx)
	return imported, nil
}
