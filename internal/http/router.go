package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(Timeout)
	r.Use(CORS)
	r.Use(StaffID)

	r.Get("/healthz", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", handler.ListProducts)
		r.Post("/products", handler.AddProduct)
		r.Put("/products/{id}", handler.EditProduct)
		r.Delete("/products/{id}", handler.DeleteProduct)
		r.Patch("/products/{id}/stock", handler.UpdateStock)
		r.Get("/products/{id}/reconciliation", handler.ReconcileStock)
		r.Post("/products/import-excel", handler.ImportProductsExcel)

		r.Get("/clients", handler.ListClients)
		r.Post("/clients", handler.AddClient)
		r.Get("/clients/{id}", handler.GetClient)
		r.Post("/clients/{id}/payments", handler.RecordPayment)

		r.Get("/orders", handler.ListOrders)
		r.Post("/checkout", handler.Checkout)

		r.Get("/stock-movements", handler.ListStockMovements)

		r.Get("/inventory/summary", handler.InventorySummary)
		r.Get("/inventory/low-stock", handler.LowStock)
		r.Get("/reports/inventory.xlsx", handler.InventoryReport)

		r.Get("/settings", handler.GetSettings)
		r.Patch("/settings", handler.UpdateSettings)

		r.Get("/users", handler.ListUsers)
		r.Post("/users", handler.UpsertUser)

		r.Post("/snapshot/refresh", handler.RefreshSnapshot)
		r.Post("/snapshot/clear", handler.ClearSnapshot)
	})

	return r
}
