package invoices

import (
	"net/http"

	"pet-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/invoices", func(ir chi.Router) {
		ir.Post("/", createInvoiceHandler(svc))
		ir.Get("/", listInvoicesHandler(svc))
		ir.Get("/{invoiceID}", getInvoiceHandler(svc))
		ir.Patch("/{invoiceID}", updateInvoiceHandler(svc))
		ir.Delete("/{invoiceID}", deleteInvoiceHandler(svc))
	})
}

// createInvoiceHandler godoc
// @Summary Emitir factura de una cita
// @Description additional_cost por defecto 0, payment_status por defecto Pending.
// @Tags invoices
// @Accept json
// @Produce json
// @Param body body CreateInput true "Factura"
// @Success 201 {object} clinic.Invoice
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody "la cita ya está facturada"
// @Router /invoices [post]
func createInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		inv, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, inv)
	}
}

// listInvoicesHandler godoc
// @Summary Listar facturas
// @Tags invoices
// @Produce json
// @Success 200 {array} clinic.Invoice
// @Router /invoices [get]
func listInvoicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.FindAll(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func getInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "invoiceID")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		inv, err := svc.FindOne(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, inv)
	}
}

// updateInvoiceHandler godoc
// @Summary Actualizar factura (p.ej. registrar el pago)
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path int true "Invoice ID"
// @Param body body UpdateInput true "Campos a modificar"
// @Success 200 {object} clinic.Invoice
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Router /invoices/{invoiceID} [patch]
func updateInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "invoiceID")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		var in UpdateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		inv, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, inv)
	}
}

func deleteInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "invoiceID")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		if err := svc.Remove(r.Context(), id); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
