package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"nexuspos/internal/domain"
)

func (r *Repository) InsertOrder(ctx context.Context, o domain.Order) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO orders (id, client_id, staff_id, total_amount, status, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, o.ClientID, o.StaffID, o.TotalAmount, o.Status, o.Date); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *Repository) SetOrderStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE orders SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("set order %s status %s: %w", id, status, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertOrderItems writes all line snapshots in one statement so the batch is
// atomic at the store.
func (r *Repository) InsertOrderItems(ctx context.Context, items []domain.OrderLine) error {
	if len(items) == 0 {
		return fmt.Errorf("order items cannot be empty")
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO order_items (id, order_id, product_id, quantity, price_at_sale) VALUES ")
	args := make([]any, 0, len(items)*5)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
		args = append(args, item.ID, item.OrderID, item.ProductID, item.Quantity, item.PriceAtSale)
	}

	if _, err := r.pool.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

// ListRecentOrders returns the newest orders with the client company name and
// product-decorated line items. Lines whose product has been deleted keep the
// 'Unknown Product' fallback rather than dropping out of history.
func (r *Repository) ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
		SELECT
			o.id,
			o.client_id,
			COALESCE(c.company_name, 'Unknown Client'),
			o.staff_id,
			o.total_amount::double precision,
			o.status,
			o.date
		FROM orders o
		LEFT JOIN clients c ON c.id = o.client_id
		ORDER BY o.date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, limit)
	orderIDs := make([]string, 0, limit)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID,
			&o.ClientID,
			&o.ClientName,
			&o.StaffID,
			&o.TotalAmount,
			&o.Status,
			&o.Date,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Items = []domain.OrderLine{}
		orders = append(orders, o)
		orderIDs = append(orderIDs, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT
			oi.id,
			oi.order_id,
			oi.product_id,
			COALESCE(p.name, 'Unknown Product'),
			COALESCE(p.sku, ''),
			COALESCE(p.unit, 'pcs'),
			p.image_url,
			oi.quantity,
			oi.price_at_sale::double precision
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id
	`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	byOrder := make(map[string]int, len(orders))
	for i, o := range orders {
		byOrder[o.ID] = i
	}
	for itemRows.Next() {
		var (
			line     domain.OrderLine
			imageURL sql.NullString
		)
		if err := itemRows.Scan(
			&line.ID,
			&line.OrderID,
			&line.ProductID,
			&line.ProductName,
			&line.SKU,
			&line.Unit,
			&imageURL,
			&line.Quantity,
			&line.PriceAtSale,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if imageURL.Valid {
			value := imageURL.String
			line.ImageURL = &value
		}
		if i, ok := byOrder[line.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, line)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}
	return orders, nil
}
