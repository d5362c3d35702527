package service

import (
	"context"
	"sort"
	"sync"

	"nexuspos/internal/domain"
	"nexuspos/internal/repository"
)

// fakeStore is an in-memory stand-in for the Postgres store. It mirrors the
// real repository's semantics closely enough for the engine tests: atomic
// deltas, newest-first joined reads, and the Unknown Product fallback for
// dangling references. Failures are injected per method name.
type fakeStore struct {
	mu sync.Mutex

	products   map[string]domain.Product
	clients    map[string]domain.Client
	orders     map[string]domain.Order
	orderItems map[string][]domain.OrderLine
	movements  []domain.StockMovement
	users      map[int64]domain.User

	failOn map[string]error
	calls  map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   map[string]domain.Product{},
		clients:    map[string]domain.Client{},
		orders:     map[string]domain.Order{},
		orderItems: map[string][]domain.OrderLine{},
		users:      map[int64]domain.User{},
		failOn:     map[string]error{},
		calls:      map[string]int{},
	}
}

func (f *fakeStore) failNext(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOn[method] = err
}

func (f *fakeStore) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// enter records the call and returns an injected failure, if any.
func (f *fakeStore) enter(method string) error {
	f.calls[method]++
	if err, ok := f.failOn[method]; ok {
		delete(f.failOn, method)
		return err
	}
	return nil
}

func (f *fakeStore) ListProducts(context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListProducts"); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetProduct"); err != nil {
		return nil, err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakeStore) InsertProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("InsertProduct"); err != nil {
		return domain.Product{}, err
	}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeStore) UpdateProduct(_ context.Context, p domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateProduct"); err != nil {
		return nil, err
	}
	if _, ok := f.products[p.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	f.products[p.ID] = p
	return &p, nil
}

func (f *fakeStore) AdjustProductStock(_ context.Context, id string, delta int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AdjustProductStock"); err != nil {
		return 0, err
	}
	p, ok := f.products[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	p.Stock += delta
	f.products[id] = p
	return p.Stock, nil
}

func (f *fakeStore) DeleteProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteProduct"); err != nil {
		return err
	}
	if _, ok := f.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeStore) ListClients(context.Context) ([]domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListClients"); err != nil {
		return nil, err
	}
	out := make([]domain.Client, 0, len(f.clients))
	for _, c := range f.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetClient(_ context.Context, id string) (*domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetClient"); err != nil {
		return nil, err
	}
	c, ok := f.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeStore) InsertClient(_ context.Context, c domain.Client) (domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("InsertClient"); err != nil {
		return domain.Client{}, err
	}
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeStore) AdjustClientBalance(_ context.Context, id string, delta float64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AdjustClientBalance"); err != nil {
		return 0, err
	}
	c, ok := f.clients[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	c.Balance += delta
	f.clients[id] = c
	return c.Balance, nil
}

func (f *fakeStore) InsertOrder(_ context.Context, o domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("InsertOrder"); err != nil {
		return err
	}
	f.orders[o.ID] = o
	return nil
}

func (f *fakeStore) SetOrderStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("SetOrderStatus"); err != nil {
		return err
	}
	o, ok := f.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	f.orders[id] = o
	return nil
}

func (f *fakeStore) InsertOrderItems(_ context.Context, items []domain.OrderLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("InsertOrderItems"); err != nil {
		return err
	}
	for _, item := range items {
		f.orderItems[item.OrderID] = append(f.orderItems[item.OrderID], item)
	}
	return nil
}

func (f *fakeStore) ListRecentOrders(_ context.Context, limit int) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListRecentOrders"); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		o.ClientName = "Unknown Client"
		if c, ok := f.clients[o.ClientID]; ok {
			o.ClientName = c.CompanyName
		}
		o.Items = []domain.OrderLine{}
		for _, line := range f.orderItems[o.ID] {
			line.ProductName = "Unknown Product"
			line.Unit = "pcs"
			if p, ok := f.products[line.ProductID]; ok {
				line.ProductName = p.Name
				line.SKU = p.SKU
				line.Unit = p.Unit
				line.ImageURL = p.ImageURL
			}
			o.Items = append(o.Items, line)
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) InsertStockMovement(_ context.Context, m domain.StockMovement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("InsertStockMovement"); err != nil {
		return err
	}
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeStore) ListRecentMovements(_ context.Context, limit int) ([]domain.StockMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListRecentMovements"); err != nil {
		return nil, err
	}
	out := make([]domain.StockMovement, 0, len(f.movements))
	for i := len(f.movements) - 1; i >= 0; i-- {
		m := f.movements[i]
		m.ProductName = "Unknown Product"
		if p, ok := f.products[m.ProductID]; ok {
			m.ProductName = p.Name
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) SumMovements(_ context.Context, productID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("SumMovements"); err != nil {
		return 0, err
	}
	return f.sumLocked(productID), nil
}

func (f *fakeStore) sumMovements(productID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sumLocked(productID)
}

func (f *fakeStore) sumLocked(productID string) int {
	sum := 0
	for _, m := range f.movements {
		if m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum
}

func (f *fakeStore) ListUsers(context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListUsers"); err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) UpsertUser(_ context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpsertUser"); err != nil {
		return domain.User{}, err
	}
	if existing, ok := f.users[u.TelegramID]; ok {
		u.ID = existing.ID
		u.Role = existing.Role
	}
	f.users[u.TelegramID] = u
	return u, nil
}
