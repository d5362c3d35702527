package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"nexuspos/internal/domain"
)

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.ListUsers(ctx)
}

// UpsertUser syncs a user row keyed by telegram id. Authentication itself is
// the identity collaborator's job; this only keeps the directory current.
func (s *Service) UpsertUser(ctx context.Context, u domain.User) (domain.User, error) {
	if u.TelegramID == 0 {
		return domain.User{}, fmt.Errorf("telegram id is required")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = "STAFF"
	}
	return s.store.UpsertUser(ctx, u)
}
