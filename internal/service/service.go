package service

import (
	"context"
	"log"

	"nexuspos/internal/domain"
	"nexuspos/internal/snapshot"
)

// Store is the persistent-store surface the services mutate through. Each
// method is a single store statement; there are no multi-statement
// transactions behind this interface.
type Store interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	InsertProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	AdjustProductStock(ctx context.Context, id string, delta int) (int, error)
	DeleteProduct(ctx context.Context, id string) error

	ListClients(ctx context.Context) ([]domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	InsertClient(ctx context.Context, c domain.Client) (domain.Client, error)
	AdjustClientBalance(ctx context.Context, id string, delta float64) (float64, error)

	InsertOrder(ctx context.Context, o domain.Order) error
	SetOrderStatus(ctx context.Context, id, status string) error
	InsertOrderItems(ctx context.Context, items []domain.OrderLine) error
	ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error)

	InsertStockMovement(ctx context.Context, m domain.StockMovement) error
	ListRecentMovements(ctx context.Context, limit int) ([]domain.StockMovement, error)
	SumMovements(ctx context.Context, productID string) (int, error)

	ListUsers(ctx context.Context) ([]domain.User, error)
	UpsertUser(ctx context.Context, u domain.User) (domain.User, error)
}

type Service struct {
	store    Store
	snap     *snapshot.Cache
	settings *Settings
}

func New(store Store, snap *snapshot.Cache, settings *Settings) *Service {
	return &Service{store: store, snap: snap, settings: settings}
}

func (s *Service) Snapshot() *snapshot.Cache {
	return s.snap
}

// refresh runs the wholesale snapshot refetch that follows every mutation.
// A refresh failure is logged, not propagated: the mutation itself already
// succeeded or failed on its own terms, and re-running refresh is always safe.
func (s *Service) refresh(ctx context.Context) {
	if err := s.snap.Refresh(ctx); err != nil {
		log.Printf("service: snapshot refresh failed: %v", err)
	}
}
