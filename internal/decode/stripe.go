package decode

import (
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// StripeCustomerFromBackend decodes a stripe_customer row.
func StripeCustomerFromBackend(row Row) (*domain.StripeCustomer, error) {
	id, err := requireString(row, "stripe_id")
	if err != nil {
		return nil, err
	}
	userID, err := requireUUID(row, "user_id")
	if err != nil {
		return nil, err
	}
	return &domain.StripeCustomer{
		ID:     domain.NewStripeCustomerID(id),
		UserID: domain.NewUserID(userID),
	}, nil
}

// StripeProductFromBackend decodes a stripe_product row.
func StripeProductFromBackend(row Row) (*domain.StripeProduct, error) {
	id, err := requireString(row, "stripe_id")
	if err != nil {
		return nil, err
	}
	unit, err := requireString(row, "unit")
	if err != nil {
		return nil, err
	}
	unitAmount, err := requireInt(row, "unit_amount")
	if err != nil {
		return nil, err
	}
	recurring, err := requireBool(row, "recurring")
	if err != nil {
		return nil, err
	}
	return &domain.StripeProduct{
		ID:         domain.NewStripeProductID(id),
		Unit:       unit,
		UnitAmount: unitAmount,
		Recurring:  recurring,
	}, nil
}

// StripeInvoiceFromBackend decodes a stripe_invoice header row; lines are
// decoded separately and attached by the repository.
func StripeInvoiceFromBackend(row Row) (*domain.StripeInvoice, error) {
	id, err := requireString(row, "stripe_id")
	if err != nil {
		return nil, err
	}
	customerID, err := requireString(row, "customer_id")
	if err != nil {
		return nil, err
	}
	paid, err := requireBool(row, "paid")
	if err != nil {
		return nil, err
	}
	currency, err := requireString(row, "currency")
	if err != nil {
		return nil, err
	}
	total, err := requireInt(row, "total_excl_tax")
	if err != nil {
		return nil, err
	}
	return &domain.StripeInvoice{
		ID:           domain.NewStripeInvoiceID(id),
		CustomerID:   domain.NewStripeCustomerID(customerID),
		Paid:         paid,
		Currency:     currency,
		TotalExclTax: total,
	}, nil
}

// StripeInvoiceLineFromBackend decodes a stripe_invoice_line row.
func StripeInvoiceLineFromBackend(row Row) (*domain.StripeInvoiceLine, error) {
	id, err := requireString(row, "stripe_id")
	if err != nil {
		return nil, err
	}
	invoiceID, err := requireString(row, "invoice_id")
	if err != nil {
		return nil, err
	}
	customerID, err := requireString(row, "customer_id")
	if err != nil {
		return nil, err
	}
	productID, err := requireString(row, "product_id")
	if err != nil {
		return nil, err
	}
	priceID, err := optionalString(row, "price_id")
	if err != nil {
		return nil, err
	}
	quantity, err := requireInt(row, "quantity")
	if err != nil {
		return nil, err
	}
	line := &domain.StripeInvoiceLine{
		ID:         domain.NewStripeInvoiceLineID(id),
		InvoiceID:  domain.NewStripeInvoiceID(invoiceID),
		CustomerID: domain.NewStripeCustomerID(customerID),
		ProductID:  domain.NewStripeProductID(productID),
		Quantity:   quantity,
	}
	if priceID != nil {
		p := domain.NewStripePriceID(*priceID)
		line.PriceID = &p
	}
	return line, nil
}
