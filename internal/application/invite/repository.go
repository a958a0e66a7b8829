package invite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

// PurposeRepositoryInvite tags tokens minted for repository collaboration.
const PurposeRepositoryInvite = "repository_invite"

// timeNow is swapped in tests.
var timeNow = time.Now

type CreateRepositoryInviteInput struct {
	UserName             *string
	UserEmail            *string
	UserGithubOwnerLogin string
	RepositoryID         domain.RepositoryID
	Role                 domain.RepositoryUserRole
	DowRate              *int64
	DowCurrency          *string
}

type CreateRepositoryInviteResult struct {
	Token *domain.RepositoryUserPermissionToken
}

// CreateRepositoryInvite mints a signed token for a GitHub login and stores
// it, replacing any earlier invite for the same login and repository.
type CreateRepositoryInvite struct {
	tokens       ports.RepositoryUserPermissionTokenRepository
	repositories ports.RepositoryRepository
	issuer       ports.InviteTokenIssuer
	enqueuer     ports.TaskEnqueuer
	baseURL      string
}

func NewCreateRepositoryInvite(
	tokens ports.RepositoryUserPermissionTokenRepository,
	repositories ports.RepositoryRepository,
	issuer ports.InviteTokenIssuer,
	enqueuer ports.TaskEnqueuer,
	baseURL string,
) *CreateRepositoryInvite {
	return &CreateRepositoryInvite{tokens: tokens, repositories: repositories, issuer: issuer, enqueuer: enqueuer, baseURL: baseURL}
}

func (uc *CreateRepositoryInvite) Execute(ctx context.Context, input CreateRepositoryInviteInput) (*CreateRepositoryInviteResult, error) {
	repository, err := uc.repositories.GetByID(ctx, input.RepositoryID)
	if err != nil {
		return nil, err
	}
	if repository == nil {
		return nil, domerrors.NewValidationError("repository", "existing repository", input.RepositoryID.String())
	}
	email := ""
	if input.UserEmail != nil {
		email = *input.UserEmail
	}
	signed, expiresAt, err := uc.issuer.Generate(ports.InviteClaims{
		Purpose: PurposeRepositoryInvite,
		Email:   email,
		Target:  input.RepositoryID.String(),
		Role:    string(input.Role),
	})
	if err != nil {
		return nil, err
	}
	token := &domain.RepositoryUserPermissionToken{
		ID:                   domain.NewRepositoryUserPermissionTokenID(uuid.New()),
		Token:                signed,
		UserName:             input.UserName,
		UserEmail:            input.UserEmail,
		UserGithubOwnerLogin: input.UserGithubOwnerLogin,
		RepositoryID:         input.RepositoryID,
		Role:                 input.Role,
		DowRate:              input.DowRate,
		DowCurrency:          input.DowCurrency,
		ExpiresAt:            expiresAt,
	}
	if err := uc.tokens.Create(ctx, token); err != nil {
		return nil, err
	}
	if input.UserEmail != nil {
		inviteURL := uc.baseURL + "/invites/repository/accept?token=" + signed
		if err := uc.enqueuer.EnqueueRepositoryInviteEmail(ctx, *input.UserEmail, input.RepositoryID.String(), inviteURL); err != nil {
			return nil, err
		}
	}
	return &CreateRepositoryInviteResult{Token: token}, nil
}

type AcceptRepositoryInviteResult struct {
	RepositoryID domain.RepositoryID
	Role         domain.RepositoryUserRole
	DowRate      *int64
	DowCurrency  *string
}

// AcceptRepositoryInvite redeems a repository invite: the token burns and the
// granted role comes back to the caller.
type AcceptRepositoryInvite struct {
	tokens ports.RepositoryUserPermissionTokenRepository
}

func NewAcceptRepositoryInvite(tokens ports.RepositoryUserPermissionTokenRepository) *AcceptRepositoryInvite {
	return &AcceptRepositoryInvite{tokens: tokens}
}

func (uc *AcceptRepositoryInvite) Execute(ctx context.Context, rawToken string) (*AcceptRepositoryInviteResult, error) {
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
	if err := uc.tokens.SetAsUsed(ctx, token.ID); err != nil {
		return nil, err
	}
	return &AcceptRepositoryInviteResult{
		RepositoryID: token.RepositoryID,
		Role:         token.Role,
		DowRate:      token.DowRate,
		DowCurrency:  token.DowCurrency,
	}, nil
}
