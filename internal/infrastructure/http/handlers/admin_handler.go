package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/him-Tech/web2-backend-sub000/internal/application/invite"
	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// AdminHandler exposes back-office operations: company onboarding, invites and
// manual invoicing. Everything here sits behind the admin-secret middleware.
type AdminHandler struct {
	companies        ports.CompanyRepository
	addresses        ports.AddressRepository
	invoices         ports.ManualInvoiceRepository
	companyInvite    *invite.CreateCompanyInvite
	repositoryInvite *invite.CreateRepositoryInvite
	validate         *validator.Validate
	log              zerolog.Logger
}

func NewAdminHandler(
	companies ports.CompanyRepository,
	addresses ports.AddressRepository,
	invoices ports.ManualInvoiceRepository,
	companyInvite *invite.CreateCompanyInvite,
	repositoryInvite *invite.CreateRepositoryInvite,
	log zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		companies:        companies,
		addresses:        addresses,
		invoices:         invoices,
		companyInvite:    companyInvite,
		repositoryInvite: repositoryInvite,
		validate:         validator.New(),
		log:              log,
	}
}

func (h *AdminHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name          *string `json:"name" validate:"omitempty,max=200"`
		TaxID         *string `json:"tax_id" validate:"omitempty,max=50"`
		ContactUserID *string `json:"contact_user_id" validate:"omitempty,uuid"`
		ContactRole   string  `json:"contact_role" validate:"omitempty,oneof=admin suggest read"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	company := &domain.Company{
		ID:    domain.NewCompanyID(uuid.New()),
		TaxID: body.TaxID,
		Name:  body.Name,
	}
	role := domain.CompanyUserRoleAdmin
	if body.ContactRole != "" {
		role = domain.CompanyUserRole(body.ContactRole)
	}
	if body.ContactUserID != nil {
		parsed, err := uuid.Parse(*body.ContactUserID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid contact_user_id")
			return
		}
		contact := domain.NewUserContact(domain.NewUserID(parsed))
		company.ContactPerson = &contact
	}
	created, err := h.companies.Insert(r.Context(), company, role)
	if err != nil {
		h.log.Error().Err(err).Msg("create company failed")
		writeDomainErr(w, err)
		return
	}
	resp := map[string]interface{}{"id": created.ID.String()}
	if created.Name != nil {
		resp["name"] = *created.Name
	}
	writeJSON(w, http.StatusCreated, resp)
}

// SetCompanyAddress creates or replaces the billing address of a company.
func (h *AdminHandler) SetCompanyAddress(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID  string  `json:"company_id" validate:"required,uuid"`
		Name       *string `json:"name" validate:"omitempty,max=200"`
		Line1      *string `json:"line_1" validate:"omitempty,max=200"`
		Line2      *string `json:"line_2" validate:"omitempty,max=200"`
		City       *string `json:"city" validate:"omitempty,max=100"`
		State      *string `json:"state" validate:"omitempty,max=100"`
		PostalCode *string `json:"postal_code" validate:"omitempty,max=20"`
		Country    *string `json:"country" validate:"omitempty,max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	parsed, err := uuid.Parse(body.CompanyID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid company_id")
		return
	}
	company, err := h.companies.GetByID(r.Context(), domain.NewCompanyID(parsed))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if company == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "company not found")
		return
	}
	address := &domain.Address{
		Name:       body.Name,
		Line1:      body.Line1,
		Line2:      body.Line2,
		City:       body.City,
		State:      body.State,
		PostalCode: body.PostalCode,
		Country:    body.Country,
	}
	if company.AddressID != nil {
		address.ID = *company.AddressID
		if err := h.addresses.Update(r.Context(), address); err != nil {
			writeDomainErr(w, err)
			return
		}
	} else {
		address.ID = domain.NewCompanyAddressID(uuid.New())
		if err := h.addresses.Insert(r.Context(), address); err != nil {
			writeDomainErr(w, err)
			return
		}
		company.AddressID = &address.ID
		if err := h.companies.Update(r.Context(), company); err != nil {
			writeDomainErr(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"address_id": address.ID.String(),
		"company_id": company.ID.String(),
	})
}

func (h *AdminHandler) CreateCompanyInvite(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserName  *string `json:"user_name" validate:"omitempty,max=200"`
		UserEmail string  `json:"user_email" validate:"required,email,max=254"`
		CompanyID string  `json:"company_id" validate:"required,uuid"`
		Role      string  `json:"role" validate:"required,oneof=admin suggest read"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	companyID, err := uuid.Parse(body.CompanyID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid company_id")
		return
	}
	result, err := h.companyInvite.Execute(r.Context(), invite.CreateCompanyInviteInput{
		UserName:  body.UserName,
		UserEmail: SanitizeEmail(body.UserEmail),
		CompanyID: domain.NewCompanyID(companyID),
		Role:      domain.CompanyUserRole(body.Role),
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token":      result.Token.Token,
		"expires_at": result.Token.ExpiresAt,
	})
}

func (h *AdminHandler) CreateRepositoryInvite(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserName    *string `json:"user_name" validate:"omitempty,max=200"`
		UserEmail   *string `json:"user_email" validate:"omitempty,email,max=254"`
		GithubLogin string  `json:"github_login" validate:"required,max=100"`
		Owner       string  `json:"owner" validate:"required,max=100"`
		Repository  string  `json:"repository" validate:"required,max=150"`
		Role        string  `json:"role" validate:"required,oneof=admin read"`
		DowRate     *int64  `json:"dow_rate" validate:"omitempty,gt=0"`
		DowCurrency *string `json:"dow_currency" validate:"omitempty,len=3"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	repoID := domain.NewRepositoryID(domain.NewOwnerID(body.Owner, nil), body.Repository, nil)
	result, err := h.repositoryInvite.Execute(r.Context(), invite.CreateRepositoryInviteInput{
		UserName:             body.UserName,
		UserEmail:            body.UserEmail,
		UserGithubOwnerLogin: body.GithubLogin,
		RepositoryID:         repoID,
		Role:                 domain.RepositoryUserRole(body.Role),
		DowRate:              body.DowRate,
		DowCurrency:          body.DowCurrency,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token":      result.Token.Token,
		"expires_at": result.Token.ExpiresAt,
	})
}

func (h *AdminHandler) CreateManualInvoice(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Number    int     `json:"number" validate:"required,gt=0"`
		CompanyID *string `json:"company_id" validate:"omitempty,uuid"`
		UserID    *string `json:"user_id" validate:"omitempty,uuid"`
		Paid      bool    `json:"paid"`
		DowAmount int64   `json:"dow_amount" validate:"required,gt=0"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	if (body.CompanyID == nil) == (body.UserID == nil) {
		writeErr(w, http.StatusBadRequest, "", "exactly one of company_id and user_id required")
		return
	}
	inv := &domain.ManualInvoice{
		ID:        domain.NewManualInvoiceID(uuid.New()),
		Number:    body.Number,
		Paid:      body.Paid,
		DowAmount: body.DowAmount,
	}
	if body.CompanyID != nil {
		parsed, err := uuid.Parse(*body.CompanyID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid company_id")
			return
		}
		id := domain.NewCompanyID(parsed)
		inv.CompanyID = &id
	}
	if body.UserID != nil {
		parsed, err := uuid.Parse(*body.UserID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid user_id")
			return
		}
		id := domain.NewUserID(parsed)
		inv.UserID = &id
	}
	if err := h.invoices.Create(r.Context(), inv); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":   inv.ID.String(),
		"paid": inv.Paid,
	})
}

func (h *AdminHandler) SetManualInvoicePaid(w http.ResponseWriter, r *http.Request) {
	var body struct {
		InvoiceID string `json:"invoice_id" validate:"required,uuid"`
		Paid      bool   `json:"paid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	parsed, err := uuid.Parse(body.InvoiceID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid invoice_id")
		return
	}
	id := domain.NewManualInvoiceID(parsed)
	if err := h.invoices.SetPaid(r.Context(), id, body.Paid); err != nil {
		writeDomainErr(w, err)
		return
	}
	invoice, err := h.invoices.GetByID(r.Context(), id)
	if err != nil || invoice == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "invoice not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":   invoice.ID.String(),
		"paid": invoice.Paid,
	})
}
