package auth

import (
	"context"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

// PurposeEmailVerification tags tokens minted by SendVerification.
const PurposeEmailVerification = "email_verification"

type SendVerificationInput struct {
	Email string
}

// SendVerification mints a signed verification token and enqueues the email.
type SendVerification struct {
	issuer   ports.InviteTokenIssuer
	enqueuer ports.TaskEnqueuer
	baseURL  string
}

func NewSendVerification(issuer ports.InviteTokenIssuer, enqueuer ports.TaskEnqueuer, baseURL string) *SendVerification {
	return &SendVerification{issuer: issuer, enqueuer: enqueuer, baseURL: baseURL}
}

func (uc *SendVerification) Execute(ctx context.Context, input SendVerificationInput) error {
	token, _, err := uc.issuer.Generate(ports.InviteClaims{
		Purpose: PurposeEmailVerification,
		Email:   input.Email,
	})
	if err != nil {
		return err
	}
	return uc.enqueuer.EnqueueVerificationEmail(ctx, input.Email, uc.baseURL+"/auth/verify-email?token="+token)
}

// VerifyEmail consumes a verification token and flips the user's flag.
type VerifyEmail struct {
	users  ports.UserRepository
	issuer ports.InviteTokenIssuer
}

func NewVerifyEmail(users ports.UserRepository, issuer ports.InviteTokenIssuer) *VerifyEmail {
	return &VerifyEmail{users: users, issuer: issuer}
}

func (uc *VerifyEmail) Execute(ctx context.Context, token string) error {
	claims, err := uc.issuer.Parse(token)
	if err != nil {
		return domerrors.ErrEmailTokenInvalid
	}
	if claims.Purpose != PurposeEmailVerification {
		return domerrors.ErrEmailTokenInvalid
	}
	user, err := uc.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return domerrors.ErrEmailTokenInvalid
	}
	return uc.users.SetEmailVerified(ctx, user.ID)
}
