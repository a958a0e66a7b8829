package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// StripeHandler records Stripe mirror entities pushed by the back office.
// The bodies carry raw Stripe API objects; the decoders validate their shape,
// so a malformed payload is a 400 before anything touches the database.
type StripeHandler struct {
	customers ports.StripeCustomerRepository
	products  ports.StripeProductRepository
	invoices  ports.StripeInvoiceRepository
	log       zerolog.Logger
}

func NewStripeHandler(
	customers ports.StripeCustomerRepository,
	products ports.StripeProductRepository,
	invoices ports.StripeInvoiceRepository,
	log zerolog.Logger,
) *StripeHandler {
	return &StripeHandler{
		customers: customers,
		products:  products,
		invoices:  invoices,
		log:       log,
	}
}

func (h *StripeHandler) RecordCustomer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID   string         `json:"user_id"`
		Customer map[string]any `json:"customer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid user_id")
		return
	}
	customer, err := decode.CustomerFromStripe(domain.NewUserID(userID), body.Customer)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if err := h.customers.Insert(r.Context(), customer); err != nil {
		h.log.Error().Err(err).Str("customer_id", customer.ID.String()).Msg("record stripe customer failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"id": customer.ID.String()})
}

func (h *StripeHandler) RecordProduct(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Product map[string]any `json:"product"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	product, err := decode.ProductFromStripe(body.Product)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if err := h.products.Insert(r.Context(), product); err != nil {
		h.log.Error().Err(err).Str("product_id", product.ID.String()).Msg("record stripe product failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":   product.ID.String(),
		"unit": product.Unit,
	})
}

func (h *StripeHandler) RecordInvoice(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Invoice map[string]any `json:"invoice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	invoice, err := decode.InvoiceFromStripe(body.Invoice)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	// Header and lines go in together; an unknown customer or product fails
	// the whole invoice with a constraint conflict.
	if err := h.invoices.Insert(r.Context(), invoice); err != nil {
		h.log.Error().Err(err).Str("invoice_id", invoice.ID.String()).Msg("record stripe invoice failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    invoice.ID.String(),
		"paid":  invoice.Paid,
		"lines": len(invoice.Lines),
	})
}
