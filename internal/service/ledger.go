package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nexuspos/internal/domain"
	"nexuspos/internal/repository"
)

// RecordMovement appends one stock-movement ledger entry. Pure append: it
// never touches product stock, and it places no constraint on the type/sign
// combination — callers own consistent tagging. Does not refresh the
// snapshot; the enclosing operation does that once it is done.
func (s *Service) RecordMovement(ctx context.Context, productID, movementType string, quantityDelta int, note *string) error {
	return s.store.InsertStockMovement(ctx, domain.StockMovement{
		ID:        uuid.NewString(),
		ProductID: productID,
		Type:      movementType,
		Quantity:  quantityDelta,
		Note:      note,
		Date:      time.Now().UTC(),
	})
}

// StockReconciliation compares a product's stored stock against the running
// total of its ledger entries. Drift is stock minus ledger total; non-zero
// drift usually means a partially processed order or an edit made outside the
// normal paths.
type StockReconciliation struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	LedgerTotal int    `json:"ledger_total"`
	Drift       int    `json:"drift"`
}

// ReconcileStock reads the store directly, bypassing the snapshot, so the
// numbers reflect what actually landed.
func (s *Service) ReconcileStock(ctx context.Context, productID string) (*StockReconciliation, error) {
	p, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("reconcile product %s: %w", productID, err)
	}
	total, err := s.store.SumMovements(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("reconcile product %s: %w", productID, err)
	}
	return &StockReconciliation{
		ProductID:   p.ID,
		ProductName: p.Name,
		Stock:       p.Stock,
		LedgerTotal: total,
		Drift:       p.Stock - total,
	}, nil
}
