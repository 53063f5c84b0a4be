package httphandler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/inventory/internal/core/domain"
	"github.com/niksmo/inventory/internal/core/port"
)

// POST /products/ JSON ProductCreate (201 Created, 422 Unprocessable)

type ProductsHandler struct {
	registrar port.ProductRegistrar
}

func RegisterProducts(mux *http.ServeMux, registrar port.ProductRegistrar) {
	h := ProductsHandler{registrar}
	route(mux, http.MethodPost, "/products/", h.PostProduct)
}

func (h ProductsHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostProduct"
	log := slog.With("op", op)

	var in ProductCreate
	if err := decodeBody(r, &in); err != nil {
		writeError(w, log, err)
		return
	}

	p, err := h.registrar.RegisterProduct(r.Context(), in.toDomain())
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, fromDomainProduct(p))
	log.Info("product registered", "productID", p.ID)
}

// GET /inventory/?threshold=int (200 OK, 422 Unprocessable)
// PUT /inventory/{product_id} JSON StockUpdate (200 OK, 404 Not found)

type InventoryHandler struct {
	manager port.InventoryManager
}

func RegisterInventory(mux *http.ServeMux, manager port.InventoryManager) {
	h := InventoryHandler{manager}
	route(mux, http.MethodGet, "/inventory/", h.GetInventory)
	mux.HandleFunc("PUT /inventory/{product_id}", h.PutStock)
}

func (h InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	const op = "InventoryHandler.GetInventory"
	log := slog.With("op", op)

	qp := newQueryParser(r.URL.Query())
	threshold := qp.intParam("threshold")
	if err := qp.err("invalid query"); err != nil {
		writeError(w, log, err)
		return
	}

	ps, err := h.manager.ListInventory(r.Context(), threshold)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, fromDomainProducts(ps))
}

func (h InventoryHandler) PutStock(w http.ResponseWriter, r *http.Request) {
	const op = "InventoryHandler.PutStock"
	log := slog.With("op", op)

	id, err := strconv.ParseInt(r.PathValue("product_id"), 10, 64)
	if err != nil {
		writeError(w, log, domain.NewValidationError(
			"invalid path", domain.Violations{"product_id": "int"},
		))
		return
	}

	var in StockUpdate
	if err := decodeBody(r, &in); err != nil {
		writeError(w, log, err)
		return
	}

	p, err := h.manager.UpdateStock(r.Context(), id, *in.Stock)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, fromDomainProduct(p))
	log.Info("stock updated", "productID", p.ID, "stock", p.Stock)
}
