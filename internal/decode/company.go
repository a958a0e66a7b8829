package decode

import (
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

// CompanyFromBackend decodes a company row. The two nullable contact columns
// fold into the tagged ContactPersonID variant; both set is a decode error,
// backing the chk_one_contact constraint at the application layer too.
func CompanyFromBackend(row Row) (*domain.Company, error) {
	id, err := requireUUID(row, "id")
	if err != nil {
		return nil, err
	}
	taxID, err := optionalString(row, "tax_id")
	if err != nil {
		return nil, err
	}
	name, err := optionalString(row, "name")
	if err != nil {
		return nil, err
	}
	contactUserID, err := optionalUUID(row, "contact_person_user_id")
	if err != nil {
		return nil, err
	}
	contactThirdPartyID, err := optionalString(row, "contact_person_third_party_id")
	if err != nil {
		return nil, err
	}
	if contactUserID != nil && contactThirdPartyID != nil {
		return nil, domerrors.NewValidationError("contact_person_user_id", "at most one contact-person column set", row)
	}
	var contact *domain.ContactPersonID
	if contactUserID != nil {
		c := domain.NewUserContact(domain.NewUserID(*contactUserID))
		contact = &c
	} else if contactThirdPartyID != nil {
		c := domain.NewThirdPartyContact(domain.NewThirdPartyUserID(*contactThirdPartyID))
		contact = &c
	}
	addressUUID, err := optionalUUID(row, "address_id")
	if err != nil {
		return nil, err
	}
	var addressID *domain.CompanyAddressID
	if addressUUID != nil {
		a := domain.NewCompanyAddressID(*addressUUID)
		addressID = &a
	}
	return &domain.Company{
		ID:            domain.NewCompanyID(id),
		TaxID:         taxID,
		Name:          name,
		ContactPerson: contact,
		AddressID:     addressID,
	}, nil
}

// AddressFromBackend decodes a company_address row.
func AddressFromBackend(row Row) (*domain.Address, error) {
	id, err := requireUUID(row, "id")
	if err != nil {
		return nil, err
	}
	addr := &domain.Address{ID: domain.NewCompanyAddressID(id)}
	for _, f := range []struct {
		field string
		dst   **string
	}{
		{"name", &addr.Name},
		{"line_1", &addr.Line1},
		{"line_2", &addr.Line2},
		{"city", &addr.City},
		{"state", &addr.State},
		{"postal_code", &addr.PostalCode},
		{"country", &addr.Country},
	} {
		v, err := optionalString(row, f.field)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return addr, nil
}
