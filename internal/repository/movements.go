package repository

import (
	"context"
	"database/sql"
	"fmt"

	"nexuspos/internal/domain"
)

// InsertStockMovement appends one ledger entry. The ledger is purely
// additive; product stock is adjusted by the caller as a separate write.
func (r *Repository) InsertStockMovement(ctx context.Context, m domain.StockMovement) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO stock_movements (id, product_id, type, quantity, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.ProductID, m.Type, m.Quantity, m.Note, m.Date); err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

func (r *Repository) ListRecentMovements(ctx context.Context, limit int) ([]domain.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT
			m.id,
			m.product_id,
			COALESCE(p.name, 'Unknown Product'),
			m.type,
			m.quantity,
			m.created_at,
			m.note
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id
		ORDER BY m.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	movements := make([]domain.StockMovement, 0, limit)
	for rows.Next() {
		var (
			m    domain.StockMovement
			note sql.NullString
		)
		if err := rows.Scan(
			&m.ID,
			&m.ProductID,
			&m.ProductName,
			&m.Type,
			&m.Quantity,
			&m.Date,
			&note,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if note.Valid {
			value := note.String
			m.Note = &value
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock movements: %w", err)
	}
	return movements, nil
}

// SumMovements returns the running total of ledger quantities for a product.
// Used by reconciliation tooling to compare against the product's stock.
func (r *Repository) SumMovements(ctx context.Context, productID string) (int, error) {
	var sum int
	if err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0)::int
		FROM stock_movements
		WHERE product_id = $1
	`, productID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum movements for product %s: %w", productID, err)
	}
	return sum, nil
}
