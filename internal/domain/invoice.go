package domain

// ManualInvoice is an invoice issued outside Stripe. Exactly one of CompanyID
// and UserID is set; the schema rejects rows with both via the
// chk_company_nor_user constraint.
type ManualInvoice struct {
	ID        ManualInvoiceID
	Number    int
	CompanyID *CompanyID
	UserID    *UserID
	Paid      bool
	DowAmount int64
}
