package http

import (
	"context"
	"sort"
	"sync"

	"nexuspos/internal/domain"
	"nexuspos/internal/repository"
)

// stubStore backs the handler tests with just enough store behavior for the
// routes under test. Failures are injected per method name.
type stubStore struct {
	mu         sync.Mutex
	products   map[string]domain.Product
	clients    map[string]domain.Client
	orders     map[string]domain.Order
	orderItems map[string][]domain.OrderLine
	movements  []domain.StockMovement
	users      map[int64]domain.User
	failOn     map[string]error
}

func newStubStore() *stubStore {
	return &stubStore{
		products:   map[string]domain.Product{},
		clients:    map[string]domain.Client{},
		orders:     map[string]domain.Order{},
		orderItems: map[string][]domain.OrderLine{},
		users:      map[int64]domain.User{},
		failOn:     map[string]error{},
	}
}

func (s *stubStore) failNext(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[method] = err
}

func (s *stubStore) enter(method string) error {
	if err, ok := s.failOn[method]; ok {
		delete(s.failOn, method)
		return err
	}
	return nil
}

func (s *stubStore) ListProducts(context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListProducts"); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubStore) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *stubStore) InsertProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("InsertProduct"); err != nil {
		return domain.Product{}, err
	}
	s.products[p.ID] = p
	return p, nil
}

func (s *stubStore) UpdateProduct(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	s.products[p.ID] = p
	return &p, nil
}

func (s *stubStore) AdjustProductStock(_ context.Context, id string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("AdjustProductStock"); err != nil {
		return 0, err
	}
	p, ok := s.products[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	p.Stock += delta
	s.products[id] = p
	return p.Stock, nil
}

func (s *stubStore) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *stubStore) ListClients(context.Context) ([]domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubStore) GetClient(_ context.Context, id string) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s *stubStore) InsertClient(_ context.Context, c domain.Client) (domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.ID] = c
	return c, nil
}

func (s *stubStore) AdjustClientBalance(_ context.Context, id string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("AdjustClientBalance"); err != nil {
		return 0, err
	}
	c, ok := s.clients[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	c.Balance += delta
	s.clients[id] = c
	return c.Balance, nil
}

func (s *stubStore) InsertOrder(_ context.Context, o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("InsertOrder"); err != nil {
		return err
	}
	s.orders[o.ID] = o
	return nil
}

func (s *stubStore) SetOrderStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	s.orders[id] = o
	return nil
}

func (s *stubStore) InsertOrderItems(_ context.Context, items []domain.OrderLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("InsertOrderItems"); err != nil {
		return err
	}
	for _, item := range items {
		s.orderItems[item.OrderID] = append(s.orderItems[item.OrderID], item)
	}
	return nil
}

func (s *stubStore) ListRecentOrders(_ context.Context, limit int) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		o.Items = append([]domain.OrderLine{}, s.orderItems[o.ID]...)
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) InsertStockMovement(_ context.Context, m domain.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("InsertStockMovement"); err != nil {
		return err
	}
	s.movements = append(s.movements, m)
	return nil
}

func (s *stubStore) ListRecentMovements(_ context.Context, limit int) ([]domain.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.StockMovement, 0, len(s.movements))
	for i := len(s.movements) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.movements[i])
	}
	return out, nil
}

func (s *stubStore) SumMovements(_ context.Context, productID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := 0
	for _, m := range s.movements {
		if m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

func (s *stubStore) ListUsers(context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TelegramID < out[j].TelegramID })
	return out, nil
}

func (s *stubStore) UpsertUser(_ context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[u.TelegramID]; ok {
		u.ID = existing.ID
		u.Role = existing.Role
	}
	s.users[u.TelegramID] = u
	return u, nil
}
