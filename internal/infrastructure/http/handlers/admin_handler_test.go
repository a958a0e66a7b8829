package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

type fakeCompanies struct {
	byID    map[uuid.UUID]*domain.Company
	updated []*domain.Company
}

func (f *fakeCompanies) Insert(ctx context.Context, company *domain.Company, role domain.CompanyUserRole) (*domain.Company, error) {
	f.byID[company.ID.UUID] = company
	return company, nil
}

func (f *fakeCompanies) Update(ctx context.Context, company *domain.Company) error {
	f.updated = append(f.updated, company)
	return nil
}

func (f *fakeCompanies) GetByID(ctx context.Context, id domain.CompanyID) (*domain.Company, error) {
	return f.byID[id.UUID], nil
}

func (f *fakeCompanies) GetAll(ctx context.Context) ([]*domain.Company, error) { return nil, nil }

type fakeAddresses struct {
	inserted []*domain.Address
	updated  []*domain.Address
}

func (f *fakeAddresses) Insert(ctx context.Context, address *domain.Address) error {
	f.inserted = append(f.inserted, address)
	return nil
}

func (f *fakeAddresses) Update(ctx context.Context, address *domain.Address) error {
	f.updated = append(f.updated, address)
	return nil
}

func (f *fakeAddresses) GetByID(ctx context.Context, id domain.CompanyAddressID) (*domain.Address, error) {
	return nil, nil
}

func (f *fakeAddresses) GetByCompanyID(ctx context.Context, id domain.CompanyID) (*domain.Address, error) {
	return nil, nil
}

func (f *fakeAddresses) GetAll(ctx context.Context) ([]*domain.Address, error) { return nil, nil }

func TestAdminSetCompanyAddress(t *testing.T) {
	companyID := uuid.New()
	name := "ACME"
	companies := &fakeCompanies{byID: map[uuid.UUID]*domain.Company{
		companyID: {ID: domain.NewCompanyID(companyID), Name: &name},
	}}
	addresses := &fakeAddresses{}
	h := NewAdminHandler(companies, addresses, nil, nil, nil, zerolog.Nop())

	body := fmt.Sprintf(`{"company_id":%q,"line_1":"1 Main St","city":"Berlin","country":"DE"}`, companyID)
	rec := httptest.NewRecorder()
	h.SetCompanyAddress(rec, httptest.NewRequest(http.MethodPost, "/admin/companies/address", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, addresses.inserted, 1)
	require.Len(t, companies.updated, 1)
	require.NotNil(t, companies.updated[0].AddressID)
	assert.Equal(t, addresses.inserted[0].ID, *companies.updated[0].AddressID)
}

func TestAdminSetCompanyAddressReplacesExisting(t *testing.T) {
	companyID := uuid.New()
	addressID := domain.NewCompanyAddressID(uuid.New())
	companies := &fakeCompanies{byID: map[uuid.UUID]*domain.Company{
		companyID: {ID: domain.NewCompanyID(companyID), AddressID: &addressID},
	}}
	addresses := &fakeAddresses{}
	h := NewAdminHandler(companies, addresses, nil, nil, nil, zerolog.Nop())

	body := fmt.Sprintf(`{"company_id":%q,"line_1":"2 Side St"}`, companyID)
	rec := httptest.NewRecorder()
	h.SetCompanyAddress(rec, httptest.NewRequest(http.MethodPost, "/admin/companies/address", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, addresses.inserted)
	require.Len(t, addresses.updated, 1)
	assert.Equal(t, addressID, addresses.updated[0].ID)
	// The link already existed, so the company row is untouched.
	assert.Empty(t, companies.updated)
}

func TestAdminSetCompanyAddressUnknownCompany(t *testing.T) {
	companies := &fakeCompanies{byID: map[uuid.UUID]*domain.Company{}}
	h := NewAdminHandler(companies, &fakeAddresses{}, nil, nil, nil, zerolog.Nop())

	body := fmt.Sprintf(`{"company_id":%q}`, uuid.New())
	rec := httptest.NewRecorder()
	h.SetCompanyAddress(rec, httptest.NewRequest(http.MethodPost, "/admin/companies/address", strings.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
