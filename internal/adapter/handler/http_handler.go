package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rl1809/minimart/internal/core/domain"
	"github.com/rl1809/minimart/internal/core/service"
	"github.com/rl1809/minimart/internal/port"
)

// HTTPHandler exposes the catalog, cart and checkout operations as a JSON
// API. The shop models one logical session, so a mutex serializes
// requests; the core itself stays lock-free.
type HTTPHandler struct {
	mu       sync.Mutex
	catalog  *service.Catalog
	cart     *service.Cart
	checkout *service.Checkout
	ledger   *service.Ledger
	store    port.CatalogStore
}

func NewHTTPHandler(catalog *service.Catalog, cart *service.Cart, checkout *service.Checkout, ledger *service.Ledger, store port.CatalogStore) *HTTPHandler {
	return &HTTPHandler{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		ledger:   ledger,
		store:    store,
	}
}

// Router wires each endpoint 1:1 onto a core operation.
func (h *HTTPHandler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/api/products", h.AddProduct).Methods(http.MethodPost)
	r.HandleFunc("/api/products/{name}", h.GetProduct).Methods(http.MethodGet)
	r.HandleFunc("/api/cart", h.AddToCart).Methods(http.MethodPost)
	r.HandleFunc("/api/checkout", h.Checkout).Methods(http.MethodPost)
	r.HandleFunc("/api/orders", h.ListOrders).Methods(http.MethodGet)
	return r
}

type AddProductRequest struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

type AddToCartRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type CheckoutRequest struct {
	Purchaser string `json:"purchaser"`
}

type LineFailureResponse struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
	Available *int   `json:"available,omitempty"`
}

type CheckoutResponse struct {
	Reference string                `json:"reference"`
	OrderID   int                   `json:"order_id,omitempty"`
	Items     []string              `json:"items,omitempty"`
	Total     float64               `json:"total"`
	Failures  []LineFailureResponse `json:"failures,omitempty"`
}

type ProductResponse struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

type OrderResponse struct {
	ID        int      `json:"id"`
	Purchaser string   `json:"purchaser"`
	Items     []string `json:"items"`
	Total     float64  `json:"total"`
	CreatedAt string   `json:"created_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Name == "" || req.Price < 0 || req.Stock < 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing or invalid fields"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.catalog.Upsert(domain.Product{
		ID:       req.ID,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
	})
	h.persist(r)

	writeJSON(w, http.StatusCreated, ProductResponse(req))
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	h.mu.Lock()
	p, ok := h.catalog.FindByName(name)
	h.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}
	writeJSON(w, http.StatusOK, ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
	})
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	h.mu.Lock()
	err := h.cart.Add(req.Name, req.Quantity)
	h.mu.Unlock()

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Purchaser == "" {
		req.Purchaser = "Guest"
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	receipt, err := h.checkout.Commit(h.cart, req.Purchaser)
	if err != nil {
		writeError(w, err)
		return
	}
	h.persist(r)

	resp := CheckoutResponse{
		Reference: uuid.NewString(),
		Total:     receipt.Total,
	}
	if receipt.Order != nil {
		resp.OrderID = receipt.Order.ID
		resp.Items = receipt.Order.Items
	}
	for _, f := range receipt.Failures {
		lf := LineFailureResponse{Name: f.Name, Quantity: f.Quantity, Reason: f.Err.Error()}
		var stockErr *domain.InsufficientStockError
		if errors.As(f.Err, &stockErr) {
			avail := stockErr.Available
			lf.Available = &avail
		}
		resp.Failures = append(resp.Failures, lf)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	orders := h.ledger.All()
	h.mu.Unlock()

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderResponse{
			ID:        o.ID,
			Purchaser: o.Purchaser,
			Items:     o.Items,
			Total:     o.Total,
			CreatedAt: o.CreatedAt.UTC().Format(timeLayout),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

const timeLayout = "2006-01-02T15:04:05Z"

// persist writes the current catalog snapshot through the store. A failed
// write is logged, not surfaced: the in-memory state is still correct.
func (h *HTTPHandler) persist(r *http.Request) {
	if h.store == nil {
		return
	}
	if err := h.store.Save(r.Context(), h.catalog.Export()); err != nil {
		log.Printf("persist catalog: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuantity):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrEmptyCart):
		status = http.StatusConflict
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
