package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nexuspos/internal/domain"
)

var ErrNotFound = errors.New("not found")

// Repository talks to the hosted Postgres store. Every method issues exactly
// one statement: the store guarantees per-statement atomicity but offers no
// client-side multi-statement transactions, so no method opens one. Columns
// are snake_case on the wire and mapped to camelCase domain fields here.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const productColumns = `
	id,
	sku,
	name,
	category,
	price::double precision,
	cost::double precision,
	stock,
	min_stock,
	unit,
	image_url,
	created_at,
	updated_at
`

func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &product, nil
}

func (r *Repository) InsertProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return domain.Product{}, fmt.Errorf("product name is required")
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (id, sku, name, category, price, cost, stock, min_stock, unit, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+productColumns+`
	`, p.ID, p.SKU, name, p.Category, p.Price, p.Cost, p.Stock, p.MinStock, p.Unit, p.ImageURL)

	created, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return created, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE products
		SET
			sku = $2,
			name = $3,
			category = $4,
			price = $5,
			cost = $6,
			stock = $7,
			min_stock = $8,
			unit = $9,
			image_url = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+productColumns+`
	`, p.ID, p.SKU, p.Name, p.Category, p.Price, p.Cost, p.Stock, p.MinStock, p.Unit, p.ImageURL)

	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update product %s: %w", p.ID, err)
	}
	return &updated, nil
}

// AdjustProductStock applies a signed delta server-side so concurrent
// checkouts cannot lose each other's decrement. Stock is allowed to go
// negative; oversell is surfaced by the low-stock view, not blocked here.
func (r *Repository) AdjustProductStock(ctx context.Context, id string, delta int) (int, error) {
	var stock int
	err := r.pool.QueryRow(ctx, `
		UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING stock
	`, id, delta).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("adjust stock for product %s: %w", id, err)
	}
	return stock, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const clientColumns = `
	id,
	name,
	company_name,
	email,
	phone,
	balance::double precision,
	status,
	created_at
`

func (r *Repository) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		ORDER BY company_name ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func (r *Repository) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE id = $1
	`, id)
	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get client %s: %w", id, err)
	}
	return &client, nil
}

func (r *Repository) InsertClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return domain.Client{}, fmt.Errorf("client name is required")
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO clients (id, name, company_name, email, phone, balance, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+clientColumns+`
	`, c.ID, name, c.CompanyName, c.Email, c.Phone, c.Balance, c.Status)

	created, err := scanClient(row)
	if err != nil {
		return domain.Client{}, fmt.Errorf("insert client: %w", err)
	}
	return created, nil
}

// AdjustClientBalance applies a signed delta server-side: negative for a
// checkout debit, positive for a recorded payment. No other path may change
// a client's balance.
func (r *Repository) AdjustClientBalance(ctx context.Context, id string, delta float64) (float64, error) {
	var balance float64
	err := r.pool.QueryRow(ctx, `
		UPDATE clients
		SET balance = balance + $2
		WHERE id = $1
		RETURNING balance::double precision
	`, id, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("adjust balance for client %s: %w", id, err)
	}
	return balance, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p        domain.Product
		imageURL sql.NullString
	)
	if err := row.Scan(
		&p.ID,
		&p.SKU,
		&p.Name,
		&p.Category,
		&p.Price,
		&p.Cost,
		&p.Stock,
		&p.MinStock,
		&p.Unit,
		&imageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return domain.Product{}, err
	}
	if imageURL.Valid {
		value := imageURL.String
		p.ImageURL = &value
	}
	return p, nil
}

func scanClient(row pgx.Row) (domain.Client, error) {
	var c domain.Client
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.CompanyName,
		&c.Email,
		&c.Phone,
		&c.Balance,
		&c.Status,
		&c.CreatedAt,
	); err != nil {
		return domain.Client{}, err
	}
	return c, nil
}
