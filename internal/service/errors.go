package service

import (
	"errors"
	"fmt"
)

var (
	ErrClientNotFound  = errors.New("client not found in snapshot")
	ErrProductNotFound = errors.New("product not found in snapshot")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrStaffRequired   = errors.New("staff id is required")
)

// PartialCheckoutError reports a checkout that failed after the order row was
// committed. Nothing is rolled back; the persisted order status names the
// last step that landed, and OrderID/Step carry enough context for manual
// reconciliation. Callers must tell the user the order may be partially
// processed.
type PartialCheckoutError struct {
	OrderID string
	Step    string
	Err     error
}

func (e *PartialCheckoutError) Error() string {
	return fmt.Sprintf("checkout partially failed at step %s (order %s): %v", e.Step, e.OrderID, e.Err)
}

func (e *PartialCheckoutError) Unwrap() error {
	return e.Err
}
