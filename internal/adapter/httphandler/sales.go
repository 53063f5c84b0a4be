package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/inventory/internal/core/domain"
	"github.com/niksmo/inventory/internal/core/port"
)

// GET /sales/?from_date&to_date&item_id&category_filter (200 OK, 422 Unprocessable)
// POST /sales/ JSON SaleCreate (201 Created, 404 Not found, 422 Unprocessable)

type SalesHandler struct {
	reader   port.SalesReader
	recorder port.SalesRecorder
}

func RegisterSales(
	mux *http.ServeMux, reader port.SalesReader, recorder port.SalesRecorder,
) {
	h := SalesHandler{reader, recorder}
	route(mux, http.MethodGet, "/sales/", h.GetSales)
	route(mux, http.MethodPost, "/sales/", h.PostSale)
}

func (h SalesHandler) GetSales(w http.ResponseWriter, r *http.Request) {
	const op = "SalesHandler.GetSales"
	log := slog.With("op", op)

	qp := newQueryParser(r.URL.Query())
	f := domain.SalesFilter{
		From:      qp.timeParam("from_date"),
		To:        qp.timeParam("to_date"),
		ProductID: qp.int64Param("item_id"),
		Category:  qp.stringParam("category_filter"),
	}
	if err := qp.err("invalid query"); err != nil {
		writeError(w, log, err)
		return
	}

	vs, err := h.reader.ListSales(r.Context(), f)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, fromDomainSales(vs))
}

func (h SalesHandler) PostSale(w http.ResponseWriter, r *http.Request) {
	const op = "SalesHandler.PostSale"
	log := slog.With("op", op)

	var in SaleCreate
	if err := decodeBody(r, &in); err != nil {
		writeError(w, log, err)
		return
	}

	v := domain.Sale{ProductID: *in.ProductID, Quantity: *in.Quantity}
	if in.DateOfSale != nil && *in.DateOfSale != "" {
		t, err := parseTime(*in.DateOfSale)
		if err != nil {
			writeError(w, log, domain.NewValidationError(
				"invalid request body",
				domain.Violations{"date_of_sale": "datetime"},
			))
			return
		}
		v.SoldAt = t
	}

	stored, err := h.recorder.RecordSale(r.Context(), v)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, fromDomainSale(stored))
	log.Info("sale recorded", "saleID", stored.ID, "productID", stored.ProductID)
}
