// Package snapshot holds the process-wide read model: the latest fetched
// products, clients, orders and stock movements. The store remains the system
// of record; the cache is an invalidate-and-refetch view that is replaced
// wholesale after every mutation, never patched incrementally.
package snapshot

import (
	"context"
	"errors"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"nexuspos/internal/domain"
)

const (
	ordersLimit    = 100
	movementsLimit = 50
)

// Reader is the slice of the store the cache refreshes from.
type Reader interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
	ListRecentMovements(ctx context.Context, limit int) ([]domain.StockMovement, error)
}

type Cache struct {
	reader Reader

	group singleflight.Group

	mu        sync.RWMutex
	products  []domain.Product
	clients   []domain.Client
	orders    []domain.Order
	movements []domain.StockMovement
}

func New(reader Reader) *Cache {
	return &Cache{reader: reader}
}

// Refresh performs the four reads and replaces the collections as a batch.
// A failed read logs and leaves that collection's prior snapshot unchanged;
// the other three still update. Concurrent callers collapse into a single
// refresh and share its result.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err, _ := c.group.Do("refresh", func() (any, error) {
		return nil, c.refresh(ctx)
	})
	return err
}

func (c *Cache) refresh(ctx context.Context) error {
	products, productsErr := c.reader.ListProducts(ctx)
	clients, clientsErr := c.reader.ListClients(ctx)
	orders, ordersErr := c.reader.ListRecentOrders(ctx, ordersLimit)
	movements, movementsErr := c.reader.ListRecentMovements(ctx, movementsLimit)

	c.mu.Lock()
	if productsErr == nil {
		c.products = products
	} else {
		log.Printf("snapshot: products read failed, keeping prior: %v", productsErr)
	}
	if clientsErr == nil {
		c.clients = clients
	} else {
		log.Printf("snapshot: clients read failed, keeping prior: %v", clientsErr)
	}
	if ordersErr == nil {
		c.orders = orders
	} else {
		log.Printf("snapshot: orders read failed, keeping prior: %v", ordersErr)
	}
	if movementsErr == nil {
		c.movements = movements
	} else {
		log.Printf("snapshot: movements read failed, keeping prior: %v", movementsErr)
	}
	c.mu.Unlock()

	return errors.Join(productsErr, clientsErr, ordersErr, movementsErr)
}

// Clear drops all collections, e.g. on logout.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.products = nil
	c.clients = nil
	c.orders = nil
	c.movements = nil
	c.mu.Unlock()
}

func (c *Cache) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Cache) Clients() []domain.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Client, len(c.clients))
	copy(out, c.clients)
	return out
}

func (c *Cache) Orders() []domain.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Order, len(c.orders))
	copy(out, c.orders)
	return out
}

func (c *Cache) Movements() []domain.StockMovement {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.StockMovement, len(c.movements))
	copy(out, c.movements)
	return out
}

// Product returns the cached product by id, or nil if the snapshot does not
// hold it.
func (c *Cache) Product(id string) *domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.products {
		if c.products[i].ID == id {
			p := c.products[i]
			return &p
		}
	}
	return nil
}

// Client returns the cached client by id, or nil if the snapshot does not
// hold it.
func (c *Cache) Client(id string) *domain.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.clients {
		if c.clients[i].ID == id {
			cl := c.clients[i]
			return &cl
		}
	}
	return nil
}
