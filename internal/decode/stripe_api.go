package decode

import (
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// CustomerFromStripe decodes a Stripe customer API payload. The platform user
// it belongs to is known from the checkout flow, not the payload.
func CustomerFromStripe(userID domain.UserID, data Row) (*domain.StripeCustomer, error) {
	id, err := requireString(data, "id")
	if err != nil {
		return nil, err
	}
	return &domain.StripeCustomer{
		ID:     domain.NewStripeCustomerID(id),
		UserID: userID,
	}, nil
}

// ProductFromStripe decodes a Stripe product API payload. The credit granted
// per unit lives in metadata, which Stripe serializes as strings; the integer
// coercion handles that.
func ProductFromStripe(data Row) (*domain.StripeProduct, error) {
	id, err := requireString(data, "id")
	if err != nil {
		return nil, err
	}
	unit, err := requireString(data, "unit_label")
	if err != nil {
		return nil, err
	}
	metadata, err := object(data, "metadata")
	if err != nil {
		return nil, err
	}
	unitAmount, err := requireInt(metadata, "unit_amount")
	if err != nil {
		return nil, err
	}
	recurring, err := optionalBool(data, "recurring")
	if err != nil {
		return nil, err
	}
	return &domain.StripeProduct{
		ID:         domain.NewStripeProductID(id),
		Unit:       unit,
		UnitAmount: unitAmount,
		Recurring:  recurring != nil && *recurring,
	}, nil
}

// InvoiceFromStripe decodes a Stripe invoice API payload with its line items
// (lines.data). A bad line fails the whole invoice.
func InvoiceFromStripe(data Row) (*domain.StripeInvoice, error) {
	id, err := requireString(data, "id")
	if err != nil {
		return nil, err
	}
	customerID, err := requireString(data, "customer")
	if err != nil {
		return nil, err
	}
	paid, err := requireBool(data, "paid")
	if err != nil {
		return nil, err
	}
	currency, err := requireString(data, "currency")
	if err != nil {
		return nil, err
	}
	total, err := requireInt(data, "total_excluding_tax")
	if err != nil {
		return nil, err
	}
	linesObj, err := object(data, "lines")
	if err != nil {
		return nil, err
	}
	rawLines, ok := linesObj["data"].([]any)
	if !ok {
		return nil, errValidation("lines.data", "list of line items", data)
	}
	invoice := &domain.StripeInvoice{
		ID:           domain.NewStripeInvoiceID(id),
		CustomerID:   domain.NewStripeCustomerID(customerID),
		Paid:         paid,
		Currency:     currency,
		TotalExclTax: total,
	}
	for _, raw := range rawLines {
		lineObj, ok := raw.(map[string]any)
		if !ok {
			return nil, errValidation("lines.data", "list of line items", data)
		}
		line, err := invoiceLineFromStripe(invoice.ID, invoice.CustomerID, lineObj)
		if err != nil {
			return nil, err
		}
		invoice.Lines = append(invoice.Lines, *line)
	}
	return invoice, nil
}

func invoiceLineFromStripe(invoiceID domain.StripeInvoiceID, customerID domain.StripeCustomerID, data Row) (*domain.StripeInvoiceLine, error) {
	id, err := requireString(data, "id")
	if err != nil {
		return nil, err
	}
	quantity, err := requireInt(data, "quantity")
	if err != nil {
		return nil, err
	}
	price, err := object(data, "price")
	if err != nil {
		return nil, err
	}
	priceID, err := requireString(price, "id")
	if err != nil {
		return nil, err
	}
	productID, err := requireString(price, "product")
	if err != nil {
		return nil, err
	}
	pid := domain.NewStripePriceID(priceID)
	return &domain.StripeInvoiceLine{
		ID:         domain.NewStripeInvoiceLineID(id),
		InvoiceID:  invoiceID,
		CustomerID: customerID,
		ProductID:  domain.NewStripeProductID(productID),
		PriceID:    &pid,
		Quantity:   quantity,
	}, nil
}
