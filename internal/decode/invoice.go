package decode

import (
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

// ManualInvoiceFromBackend decodes a manual_invoice row. Both scope columns
// set is a decode error, mirroring the chk_company_nor_user constraint.
func ManualInvoiceFromBackend(row Row) (*domain.ManualInvoice, error) {
	id, err := requireUUID(row, "id")
	if err != nil {
		return nil, err
	}
	number, err := requireInt(row, "number")
	if err != nil {
		return nil, err
	}
	companyUUID, err := optionalUUID(row, "company_id")
	if err != nil {
		return nil, err
	}
	userUUID, err := optionalUUID(row, "user_id")
	if err != nil {
		return nil, err
	}
	if companyUUID != nil && userUUID != nil {
		return nil, domerrors.NewValidationError("company_id", "at most one of company_id/user_id set", row)
	}
	paid, err := requireBool(row, "paid")
	if err != nil {
		return nil, err
	}
	dowAmount, err := requireInt(row, "dow_amount")
	if err != nil {
		return nil, err
	}
	invoice := &domain.ManualInvoice{
		ID:        domain.NewManualInvoiceID(id),
		Number:    int(number),
		Paid:      paid,
		DowAmount: dowAmount,
	}
	if companyUUID != nil {
		c := domain.NewCompanyID(*companyUUID)
		invoice.CompanyID = &c
	}
	if userUUID != nil {
		u := domain.NewUserID(*userUUID)
		invoice.UserID = &u
	}
	return invoice, nil
}
