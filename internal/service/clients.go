package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"nexuspos/internal/domain"
	"nexuspos/internal/repository"
)

// AddClient inserts a client row with the caller-supplied initial balance
// (commonly zero).
func (s *Service) AddClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = "active"
	}

	created, err := s.store.InsertClient(ctx, c)
	if err != nil {
		return domain.Client{}, fmt.Errorf("add client: %w", err)
	}
	s.refresh(ctx)
	return created, nil
}

// GetClient reads the store row directly, bypassing the snapshot, so the
// balance reflects what actually landed (the snapshot may be one refresh
// behind after a partial checkout failure).
func (s *Service) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	c, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("get client %s: %w", clientID, err)
	}
	return c, nil
}

// RecordPayment credits a payment to the client's balance. Amount is
// expected non-negative; a negative amount is not rejected and degrades into
// a micro-debit whose interpretation is the caller's.
func (s *Service) RecordPayment(ctx context.Context, clientID string, amount float64) (float64, error) {
	if s.snap.Client(clientID) == nil {
		return 0, ErrClientNotFound
	}

	balance, err := s.store.AdjustClientBalance(ctx, clientID, amount)
	if err != nil {
		return 0, fmt.Errorf("record payment for client %s: %w", clientID, err)
	}
	s.refresh(ctx)
	return balance, nil
}
