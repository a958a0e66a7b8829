package auth

import (
	"context"
	"regexp"

	"github.com/google/uuid"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type RegisterUserInput struct {
	Name     *string
	Email    string
	Password string
}

type RegisterUserResult struct {
	User *domain.User
}

// RegisterUser creates a local account and kicks off email verification.
type RegisterUser struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	verify *SendVerification
}

func NewRegisterUser(users ports.UserRepository, hasher ports.PasswordHasher, verify *SendVerification) *RegisterUser {
	return &RegisterUser{users: users, hasher: hasher, verify: verify}
}

func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	if !emailRegex.MatchString(input.Email) {
		return nil, domerrors.ErrInvalidCredentials
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUserExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID: domain.NewUserID(uuid.New()),
		Data: domain.LocalUser{
			Name:            input.Name,
			Email:           input.Email,
			IsEmailVerified: false,
			HashedPassword:  hash,
		},
		Role: domain.UserRoleUser,
	}
	if err := uc.users.InsertLocal(ctx, user); err != nil {
		return nil, err
	}
	if uc.verify != nil {
		// Verification email delivery is best-effort; the account exists
		// either way and the email can be re-sent.
		_ = uc.verify.Execute(ctx, SendVerificationInput{Email: input.Email})
	}
	return &RegisterUserResult{User: user}, nil
}
