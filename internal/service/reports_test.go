package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexuspos/internal/domain"
)

func TestInventorySummary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, domain.Product{Name: "Pot", Price: 85.5, Cost: 50, Stock: 4})
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, domain.Product{Name: "Flour", Price: 4.5, Cost: 2, Stock: 10})
	require.NoError(t, err)
	seedClient(t, svc, -75)
	seedClient(t, svc, 30)

	summary := svc.InventorySummary()
	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, 14, summary.TotalUnits)
	assert.Equal(t, 220.0, summary.StockValueCost)
	assert.Equal(t, 387.0, summary.StockValueRetail)
	// Only debt counts toward receivables, reported positive.
	assert.Equal(t, 75.0, summary.Receivables)
}

func TestLowStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, domain.Product{Name: "Degreaser", Price: 15, Stock: 3, MinStock: 10})
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, domain.Product{Name: "Boxes", Price: 1.2, Stock: 1000, MinStock: 200})
	require.NoError(t, err)

	low := svc.LowStock()
	require.Len(t, low, 1)
	assert.Equal(t, "Degreaser", low[0].Name)
}

func TestReconcileStockNoDrift(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	product, err := svc.AddProduct(ctx, domain.Product{Name: "Valve", Price: 30, Stock: 10})
	require.NoError(t, err)

	rec, err := svc.ReconcileStock(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.Stock)
	assert.Equal(t, 10, rec.LedgerTotal)
	assert.Equal(t, 0, rec.Drift)
}

func TestReconcileStockDetectsDrift(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	product, err := svc.AddProduct(ctx, domain.Product{Name: "Valve", Price: 30, Stock: 10})
	require.NoError(t, err)

	// A stock change whose ledger append fails leaves drift behind.
	store.failNext("InsertStockMovement", errors.New("store unavailable"))
	require.Error(t, svc.UpdateStock(ctx, product.ID, 15))

	rec, err := svc.ReconcileStock(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, rec.Stock)
	assert.Equal(t, 10, rec.LedgerTotal)
	assert.Equal(t, 5, rec.Drift)
}

func TestReconcileStockUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ReconcileStock(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestBuildInventoryReport(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AddProduct(context.Background(), domain.Product{Name: "Mixer", SKU: "KIT-001", Price: 450, Cost: 300, Stock: 12})
	require.NoError(t, err)

	report, err := svc.BuildInventoryReport(context.Background())
	require.NoError(t, err)
	defer report.Close()

	name, err := report.GetCellValue("Products", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Mixer", name)

	movementType, err := report.GetCellValue("Stock Movements", "C2")
	require.NoError(t, err)
	assert.Equal(t, domain.MovementRestock, movementType)
}
