package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"nexuspos/internal/domain"
	"nexuspos/internal/excel"
	"nexuspos/internal/repository"
	"nexuspos/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// --- snapshot reads (what the presentation layer renders) ---

func (h *Handler) ListProducts(w http.ResponseWriter, _ *http.Request) {
	items := h.svc.Snapshot().Products()
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) ListClients(w http.ResponseWriter, _ *http.Request) {
	items := h.svc.Snapshot().Clients()
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) ListOrders(w http.ResponseWriter, _ *http.Request) {
	items := h.svc.Snapshot().Orders()
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) ListStockMovements(w http.ResponseWriter, _ *http.Request) {
	items := h.svc.Snapshot().Movements()
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) RefreshSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Snapshot().Refresh(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "refreshed"})
}

func (h *Handler) ClearSnapshot(w http.ResponseWriter, _ *http.Request) {
	h.svc.Snapshot().Clear()
	w.WriteHeader(http.StatusNoContent)
}

// --- checkout ---

type checkoutRequest struct {
	ClientID string            `json:"client_id"`
	Items    []domain.CartItem `json:"items"`
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	staffID := staffIDFrom(r.Context())
	if staffID == "" {
		writeError(w, http.StatusUnauthorized, "X-Staff-Id header is required")
		return
	}

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	taxRate := h.svc.Settings().TaxRate
	result, err := h.svc.Checkout(r.Context(), staffID, req.ClientID, req.Items, taxRate)
	if err != nil {
		var partial *service.PartialCheckoutError
		if errors.As(err, &partial) {
			// No transactional guarantee: the order may be partially
			// processed and needs review.
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":    "checkout failed after the order was created; the order may be partially processed, please review it",
				"order_id": partial.OrderID,
				"step":     partial.Step,
			})
			return
		}
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrStaffRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// --- catalog ---

type productRequest struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"min_stock"`
	Unit     string  `json:"unit"`
	ImageURL *string `json:"image_url"`
}

func (r productRequest) toDomain(id string) domain.Product {
	return domain.Product{
		ID:       id,
		SKU:      r.SKU,
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Cost:     r.Cost,
		Stock:    r.Stock,
		MinStock: r.MinStock,
		Unit:     r.Unit,
		ImageURL: r.ImageURL,
	}
}

func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.svc.AddProduct(r.Context(), req.toDomain(""))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) EditProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.svc.EditProduct(r.Context(), req.toDomain(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) || errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateStockRequest struct {
	NewStock int `json:"new_stock"`
}

func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req updateStockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.UpdateStock(r.Context(), id, req.NewStock); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *Handler) ReconcileStock(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := h.svc.ReconcileStock(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) ImportProductsExcel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	rows, err := excel.ParseProductRows(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	imported, err := h.svc.ImportProducts(r.Context(), rows)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": imported})
}

// --- clients ---

type clientRequest struct {
	Name        string  `json:"name"`
	CompanyName string  `json:"company_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Balance     float64 `json:"balance"`
	Status      string  `json:"status"`
}

func (h *Handler) AddClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.svc.AddClient(r.Context(), domain.Client{
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
		Balance:     req.Balance,
		Status:      req.Status,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	client, err := h.svc.GetClient(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, client)
}

type paymentRequest struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	balance, err := h.svc.RecordPayment(r.Context(), id, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"balance": balance})
}

// --- inventory views / reports ---

func (h *Handler) InventorySummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.InventorySummary())
}

func (h *Handler) LowStock(w http.ResponseWriter, _ *http.Request) {
	items := h.svc.LowStock()
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) InventoryReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.BuildInventoryReport(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := report.Write(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// --- settings ---

func (h *Handler) GetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Settings())
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.AppSettings
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TaxRate < 0 {
		writeError(w, http.StatusBadRequest, "tax_rate cannot be negative")
		return
	}
	h.svc.UpdateSettings(req)
	writeJSON(w, http.StatusOK, h.svc.Settings())
}

// --- users ---

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": users, "count": len(users)})
}

type userRequest struct {
	TelegramID int64   `json:"telegram_id"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	AvatarURL  *string `json:"avatar_url"`
	Username   *string `json:"username"`
	Phone      *string `json:"phone"`
}

func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := h.svc.UpsertUser(r.Context(), domain.User{
		TelegramID: req.TelegramID,
		Name:       req.Name,
		Role:       req.Role,
		AvatarURL:  req.AvatarURL,
		Username:   req.Username,
		Phone:      req.Phone,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// --- helpers ---

func parseID(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		return "", fmt.Errorf("invalid id")
	}
	return id, nil
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
