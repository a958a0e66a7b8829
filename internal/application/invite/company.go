// Package invite implements the permission-token flows: admins invite people
// to companies or repositories, invitees redeem the single-use token.
package invite

import (
	"context"

	"github.com/google/uuid"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

// PurposeCompanyInvite tags tokens minted for company membership.
const PurposeCompanyInvite = "company_invite"

type CreateCompanyInviteInput struct {
	UserName  *string
	UserEmail string
	CompanyID domain.CompanyID
	Role      domain.CompanyUserRole
}

type CreateCompanyInviteResult struct {
	Token *domain.CompanyUserPermissionToken
}

// CreateCompanyInvite mints a signed token, stores it (replacing any earlier
// invite for the same email and company) and enqueues the invite email.
type CreateCompanyInvite struct {
	tokens    ports.CompanyUserPermissionTokenRepository
	companies ports.CompanyRepository
	issuer    ports.InviteTokenIssuer
	enqueuer  ports.TaskEnqueuer
	baseURL   string
}

func NewCreateCompanyInvite(
	tokens ports.CompanyUserPermissionTokenRepository,
	companies ports.CompanyRepository,
	issuer ports.InviteTokenIssuer,
	enqueuer ports.TaskEnqueuer,
	baseURL string,
) *CreateCompanyInvite {
	return &CreateCompanyInvite{tokens: tokens, companies: companies, issuer: issuer, enqueuer: enqueuer, baseURL: baseURL}
}

func (uc *CreateCompanyInvite) Execute(ctx context.Context, input CreateCompanyInviteInput) (*CreateCompanyInviteResult, error) {
	company, err := uc.companies.GetByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domerrors.NewValidationError("company_id", "existing company", input.CompanyID.String())
	}
	signed, expiresAt, err := uc.issuer.Generate(ports.InviteClaims{
		Purpose: PurposeCompanyInvite,
		Email:   input.UserEmail,
		Target:  input.CompanyID.String(),
		Role:    string(input.Role),
	})
	if err != nil {
		return nil, err
	}
	token := &domain.CompanyUserPermissionToken{
		ID:        domain.NewCompanyUserPermissionTokenID(uuid.New()),
		Token:     signed,
		UserName:  input.UserName,
		UserEmail: input.UserEmail,
		CompanyID: input.CompanyID,
		Role:      input.Role,
		ExpiresAt: expiresAt,
	}
	if err := uc.tokens.Create(ctx, token); err != nil {
		return nil, err
	}
	companyName := input.CompanyID.String()
	if company.Name != nil {
		companyName = *company.Name
	}
	inviteURL := uc.baseURL + "/invites/company/accept?token=" + signed
	if err := uc.enqueuer.EnqueueCompanyInviteEmail(ctx, input.UserEmail, companyName, inviteURL); err != nil {
		return nil, err
	}
	return &CreateCompanyInviteResult{Token: token}, nil
}

type AcceptCompanyInviteResult struct {
	CompanyID domain.CompanyID
	Role      domain.CompanyUserRole
}

// AcceptCompanyInvite redeems a company invite for the logged-in user: the
// membership row is written and the token burned.
type AcceptCompanyInvite struct {
	tokens  ports.CompanyUserPermissionTokenRepository
	members ports.UserCompanyRepository
}

func NewAcceptCompanyInvite(tokens ports.CompanyUserPermissionTokenRepository, members ports.UserCompanyRepository) *AcceptCompanyInvite {
	return &AcceptCompanyInvite{tokens: tokens, members: members}
}

func (uc *AcceptCompanyInvite) Execute(ctx context.Context, userID domain.UserID, rawToken string) (*AcceptCompanyInviteResult, error) {
	token, err := uc.tokens.GetByToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, domerrors.ErrTokenNotFound
	}
	if token.HasBeenUsed {
		return nil, domerrors.ErrTokenUsed
	}
	if token.Expired(timeNow()) {
		return nil, domerrors.ErrTokenExpired
	}
	if err := uc.members.Insert(ctx, userID, token.CompanyID, token.Role); err != nil {
		return nil, err
	}
	if err := uc.tokens.SetAsUsed(ctx, token.ID); err != nil {
		return nil, err
	}
	return &AcceptCompanyInviteResult{CompanyID: token.CompanyID, Role: token.Role}, nil
}
