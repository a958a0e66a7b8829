package domain

// DowUnit is the product unit that grants Days-of-Work credit.
const DowUnit = "DoW"

// StripeCustomer links a Stripe customer to a platform user.
type StripeCustomer struct {
	ID     StripeCustomerID
	UserID UserID
}

// StripeProduct mirrors a Stripe product. UnitAmount is the credit granted
// per purchased quantity unit, in the product's Unit.
type StripeProduct struct {
	ID         StripeProductID
	Unit       string
	UnitAmount int64
	Recurring  bool
}

// StripeInvoice mirrors a Stripe invoice header with its lines. Inserting an
// invoice and its lines is one logical transaction.
type StripeInvoice struct {
	ID           StripeInvoiceID
	CustomerID   StripeCustomerID
	Paid         bool
	Currency     string
	TotalExclTax int64
	Lines        []StripeInvoiceLine
}

// StripeInvoiceLine mirrors a Stripe invoice line item.
type StripeInvoiceLine struct {
	ID         StripeInvoiceLineID
	InvoiceID  StripeInvoiceID
	CustomerID StripeCustomerID
	ProductID  StripeProductID
	PriceID    *StripePriceID
	Quantity   int64
}
