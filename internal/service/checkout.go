package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"nexuspos/internal/domain"
)

type CheckoutResult struct {
	OrderID   string  `json:"order_id"`
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
	Status    string  `json:"status"`
}

// Checkout turns a cart into a completed order: order row, line-item
// snapshots at the cart's captured prices, client balance debit, and one
// stock decrement plus sale ledger entry per item.
//
// Every step is its own store call and there is no cross-step transaction.
// If the order insert fails nothing is committed. After that, a failing step
// aborts the remainder without compensation: the order's persisted status
// marks the last step that landed, and the returned PartialCheckoutError
// carries the order id, step and cause for manual reconciliation. A snapshot
// refresh runs regardless of outcome.
func (s *Service) Checkout(ctx context.Context, staffID, clientID string, cart []domain.CartItem, taxRate float64) (*CheckoutResult, error) {
	if strings.TrimSpace(staffID) == "" {
		return nil, ErrStaffRequired
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	if s.snap.Client(clientID) == nil {
		return nil, ErrClientNotFound
	}

	// Prices were captured at add-to-cart time; they are not re-read from
	// the store here.
	subtotal := 0.0
	for _, item := range cart {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity %d for product %s", item.Quantity, item.ProductID)
		}
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = domain.Round2(subtotal)
	taxAmount := domain.Round2(subtotal * taxRate / 100)
	total := domain.Round2(subtotal + taxAmount)

	order := domain.Order{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		StaffID:     staffID,
		TotalAmount: total,
		Status:      domain.StatusPending,
		Date:        time.Now().UTC(),
	}
	if err := s.store.InsertOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	defer s.refresh(ctx)

	lines := make([]domain.OrderLine, 0, len(cart))
	for _, item := range cart {
		lines = append(lines, domain.OrderLine{
			ID:          uuid.NewString(),
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			PriceAtSale: item.Price,
		})
	}
	if err := s.store.InsertOrderItems(ctx, lines); err != nil {
		return nil, s.partialFailure(order.ID, "order_items", err)
	}
	if err := s.store.SetOrderStatus(ctx, order.ID, domain.StatusItemsWritten); err != nil {
		return nil, s.partialFailure(order.ID, "mark_items_written", err)
	}

	if _, err := s.store.AdjustClientBalance(ctx, clientID, -total); err != nil {
		return nil, s.partialFailure(order.ID, "balance_debit", err)
	}
	if err := s.store.SetOrderStatus(ctx, order.ID, domain.StatusBalanceApplied); err != nil {
		return nil, s.partialFailure(order.ID, "mark_balance_applied", err)
	}

	note := fmt.Sprintf("Order #%s", shortID(order.ID))
	for _, item := range cart {
		if _, err := s.store.AdjustProductStock(ctx, item.ProductID, -item.Quantity); err != nil {
			return nil, s.partialFailure(order.ID, "stock_decrement "+item.ProductID, err)
		}
		if err := s.RecordMovement(ctx, item.ProductID, domain.MovementSale, -item.Quantity, &note); err != nil {
			return nil, s.partialFailure(order.ID, "stock_movement "+item.ProductID, err)
		}
	}
	if err := s.store.SetOrderStatus(ctx, order.ID, domain.StatusStockApplied); err != nil {
		return nil, s.partialFailure(order.ID, "mark_stock_applied", err)
	}

	if err := s.store.SetOrderStatus(ctx, order.ID, domain.StatusCompleted); err != nil {
		return nil, s.partialFailure(order.ID, "mark_completed", err)
	}

	return &CheckoutResult{
		OrderID:   order.ID,
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     total,
		Status:    domain.StatusCompleted,
	}, nil
}

func (s *Service) partialFailure(orderID, step string, err error) error {
	log.Printf("checkout: order=%s step=%s failed: %v", orderID, step, err)
	return &PartialCheckoutError{OrderID: orderID, Step: step, Err: err}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
