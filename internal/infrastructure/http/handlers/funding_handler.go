package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/him-Tech/web2-backend-sub000/internal/application/funding"
	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/http/middleware"
)

type FundingHandler struct {
	fundIssue    *funding.FundIssue
	manageIssue  *funding.ManageIssue
	updateState  *funding.UpdateIssueState
	availableDow *funding.AvailableDow
	issues       ports.IssueRepository
	validate     *validator.Validate
	log          zerolog.Logger
}

func NewFundingHandler(
	fundIssue *funding.FundIssue,
	manageIssue *funding.ManageIssue,
	updateState *funding.UpdateIssueState,
	availableDow *funding.AvailableDow,
	issues ports.IssueRepository,
	log zerolog.Logger,
) *FundingHandler {
	return &FundingHandler{
		fundIssue:    fundIssue,
		manageIssue:  manageIssue,
		updateState:  updateState,
		availableDow: availableDow,
		issues:       issues,
		validate:     validator.New(),
		log:          log,
	}
}

// issueRef identifies an issue by its natural key in request bodies.
type issueRef struct {
	Owner      string `json:"owner" validate:"required,max=100"`
	Repository string `json:"repository" validate:"required,max=150"`
	Number     int    `json:"number" validate:"required,gt=0"`
}

func (ref issueRef) id() domain.IssueID {
	repoID := domain.NewRepositoryID(domain.NewOwnerID(ref.Owner, nil), ref.Repository, nil)
	return domain.NewIssueID(repoID, ref.Number, nil)
}

// Balance reports the caller's spendable DoW, company-scoped when company_id
// is passed.
func (h *FundingHandler) Balance(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "session required")
		return
	}
	var companyID *domain.CompanyID
	if raw := r.URL.Query().Get("company_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid company_id")
			return
		}
		id := domain.NewCompanyID(parsed)
		companyID = &id
	}
	balance, err := h.availableDow.Execute(r.Context(), user.ID, companyID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	resp := map[string]interface{}{"available_dow": balance}
	if companyID != nil {
		resp["company_id"] = companyID.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FundingHandler) FundIssue(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "session required")
		return
	}
	var body struct {
		Issue     issueRef `json:"issue" validate:"required"`
		ProductID string   `json:"product_id" validate:"required,max=100"`
		DowAmount int64    `json:"dow_amount" validate:"required,gt=0"`
		CompanyID *string  `json:"company_id" validate:"omitempty,uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	var companyID *domain.CompanyID
	if body.CompanyID != nil {
		parsed, err := uuid.Parse(*body.CompanyID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid company_id")
			return
		}
		id := domain.NewCompanyID(parsed)
		companyID = &id
	}
	result, err := h.fundIssue.Execute(r.Context(), funding.FundIssueInput{
		UserID:    user.ID,
		CompanyID: companyID,
		IssueID:   body.Issue.id(),
		ProductID: domain.NewStripeProductID(body.ProductID),
		DowAmount: body.DowAmount,
	})
	if err != nil {
		middleware.RecordFundingEvent("fund_issue", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordFundingEvent("fund_issue", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         result.Funding.ID.String(),
		"dow_amount": result.Funding.DowAmount,
	})
}

func (h *FundingHandler) ManageIssue(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "session required")
		return
	}
	var body struct {
		Issue                 issueRef `json:"issue" validate:"required"`
		RequestedDowAmount    int64    `json:"requested_dow_amount" validate:"gte=0"`
		ContributorVisibility string   `json:"contributor_visibility" validate:"required,oneof=public private"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.manageIssue.Execute(r.Context(), funding.ManageIssueInput{
		IssueID:               body.Issue.id(),
		ManagerID:             user.ID,
		RequestedDowAmount:    body.RequestedDowAmount,
		ContributorVisibility: domain.ContributorVisibility(body.ContributorVisibility),
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    result.ManagedIssue.ID.String(),
		"state": string(result.ManagedIssue.State),
	})
}

func (h *FundingHandler) UpdateIssueState(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "session required")
		return
	}
	var body struct {
		ManagedIssueID string `json:"managed_issue_id" validate:"required,uuid"`
		State          string `json:"state" validate:"required,oneof=open rejected solved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	parsed, err := uuid.Parse(body.ManagedIssueID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid managed_issue_id")
		return
	}
	if err := h.updateState.Execute(r.Context(), domain.NewManagedIssueID(parsed), domain.ManagedIssueState(body.State)); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": body.State})
}

// ListIssues returns the mirrored issues of a repository.
func (h *FundingHandler) ListIssues(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	repo := r.URL.Query().Get("repository")
	if owner == "" || repo == "" {
		writeErr(w, http.StatusBadRequest, "", "owner and repository required")
		return
	}
	repoID := domain.NewRepositoryID(domain.NewOwnerID(owner, nil), repo, nil)
	issues, err := h.issues.GetByRepositoryID(r.Context(), repoID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]map[string]interface{}, 0, len(issues))
	for _, issue := range issues {
		entry := map[string]interface{}{
			"number":   issue.ID.Number,
			"title":    issue.Title,
			"html_url": issue.HTMLURL,
			"open":     issue.ClosedAt == nil,
		}
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"issues": out})
}
