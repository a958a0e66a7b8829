package decode

import (
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// UserFromBackend decodes an app_user row, joined with github_owner for
// third-party users. The variant is read from the explicit kind column.
func UserFromBackend(row Row) (*domain.User, error) {
	id, err := requireUUID(row, "id")
	if err != nil {
		return nil, err
	}
	role, err := requireEnum(row, "role", domain.UserRoles)
	if err != nil {
		return nil, err
	}
	kind, err := requireEnum(row, "kind", []domain.UserKind{domain.UserKindLocal, domain.UserKindThirdParty})
	if err != nil {
		return nil, err
	}

	var data domain.UserData
	switch kind {
	case domain.UserKindLocal:
		data, err = localUserFromBackend(row)
	case domain.UserKindThirdParty:
		data, err = thirdPartyUserFromBackend(row)
	}
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: domain.NewUserID(id), Data: data, Role: role}, nil
}

func localUserFromBackend(row Row) (domain.LocalUser, error) {
	var zero domain.LocalUser
	name, err := optionalString(row, "name")
	if err != nil {
		return zero, err
	}
	email, err := requireString(row, "email")
	if err != nil {
		return zero, err
	}
	verified, err := requireBool(row, "is_email_verified")
	if err != nil {
		return zero, err
	}
	hashed, err := requireString(row, "hashed_password")
	if err != nil {
		return zero, err
	}
	return domain.LocalUser{
		Name:            name,
		Email:           email,
		IsEmailVerified: verified,
		HashedPassword:  hashed,
	}, nil
}

func thirdPartyUserFromBackend(row Row) (domain.ThirdPartyUser, error) {
	var zero domain.ThirdPartyUser
	provider, err := requireEnum(row, "provider", []domain.Provider{domain.ProviderGithub})
	if err != nil {
		return zero, err
	}
	externalID, err := requireString(row, "third_party_id")
	if err != nil {
		return zero, err
	}
	emails, err := stringList(row, "emails")
	if err != nil {
		return zero, err
	}

	// The joined github_owner columns arrive with an owner_ prefix; absent
	// when the join found nothing.
	var owner *domain.Owner
	if login, err := optionalString(row, "github_owner_login"); err != nil {
		return zero, err
	} else if login != nil {
		owner, err = ownerFromPrefixed(row, "owner_", *login)
		if err != nil {
			return zero, err
		}
	}

	return domain.ThirdPartyUser{
		Provider:    provider,
		ExternalID:  domain.NewThirdPartyUserID(externalID),
		Emails:      emails,
		GithubOwner: owner,
	}, nil
}

// UserSessionFromBackend decodes a user_session row.
func UserSessionFromBackend(row Row) (*domain.UserSession, error) {
	id, err := requireUUID(row, "id")
	if err != nil {
		return nil, err
	}
	userID, err := requireUUID(row, "user_id")
	if err != nil {
		return nil, err
	}
	tokenHash, err := requireString(row, "token_hash")
	if err != nil {
		return nil, err
	}
	expiresAt, err := requireTime(row, "expires_at")
	if err != nil {
		return nil, err
	}
	createdAt, err := requireTime(row, "created_at")
	if err != nil {
		return nil, err
	}
	return &domain.UserSession{
		ID:        domain.NewUserSessionID(id),
		UserID:    domain.NewUserID(userID),
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}, nil
}
