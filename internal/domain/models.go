package domain

import (
	"math"
	"time"
)

// Movement types recorded in the stock ledger. The ledger itself places no
// constraint on the relationship between type and sign; callers tag
// consistently.
const (
	MovementRestock    = "restock"
	MovementSale       = "sale"
	MovementAdjustment = "adjustment"
)

// Order status markers. An order is created as StatusPending and walked
// forward as each checkout step lands; a mid-checkout failure leaves the
// persisted status at the last completed step so the order is reconcilable.
const (
	StatusPending        = "pending"
	StatusItemsWritten   = "items_written"
	StatusBalanceApplied = "balance_applied"
	StatusStockApplied   = "stock_applied"
	StatusCompleted      = "completed"
)

type Product struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Cost      float64   `json:"cost"`
	Stock     int       `json:"stock"`
	MinStock  int       `json:"min_stock"`
	Unit      string    `json:"unit"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Balance     float64   `json:"balance"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// CartItem is one deduplicated cart line. Price is the catalog price captured
// when the item was added to the cart, not re-read at checkout time.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID          string      `json:"id"`
	ClientID    string      `json:"client_id"`
	ClientName  string      `json:"client_name"`
	StaffID     string      `json:"staff_id"`
	Items       []OrderLine `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Date        time.Time   `json:"date"`
	Status      string      `json:"status"`
}

// OrderLine is the immutable record of what was sold. PriceAtSale never
// changes, even if the product's catalog price later does.
type OrderLine struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	Unit        string  `json:"unit"`
	ImageURL    *string `json:"image_url,omitempty"`
	Quantity    int     `json:"quantity"`
	PriceAtSale float64 `json:"price_at_sale"`
}

type StockMovement struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Date        time.Time `json:"date"`
	Note        *string   `json:"note,omitempty"`
}

type User struct {
	ID         string    `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	Username   *string   `json:"username,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type AppSettings struct {
	CompanyName     string  `json:"company_name"`
	Currency        string  `json:"currency"`
	TaxRate         float64 `json:"tax_rate"`
	DefaultMinStock int     `json:"default_min_stock"`
}

type ProductImportRow struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"min_stock"`
	Unit     string  `json:"unit"`
}

// ManualMovementType tags a manual stock delta. A positive correction is
// tagged restock even when it is conceptually an adjustment; the source
// system always tagged it this way and reports depend on it.
func ManualMovementType(delta int) string {
	if delta > 0 {
		return MovementRestock
	}
	return MovementAdjustment
}

// Round2 rounds a currency amount to cents.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
