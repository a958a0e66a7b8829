package decode

import (
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// CompanyUserPermissionTokenFromBackend decodes a company_user_permission_token
// row. Expiry is not checked here: expired tokens must still decode.
func CompanyUserPermissionTokenFromBackend(row Row) (*domain.CompanyUserPermissionToken, error) {
	id, err := requireUUID(row, "id")
	if err != nil {
		return nil, err
	}
	token, err := requireString(row, "token")
	if err != nil {
		return nil, err
	}
	userName, err := optionalString(row, "user_name")
	if err != nil {
		return nil, err
	}
	userEmail, err := requireString(row, "user_email")
	if err != nil {
		return nil, err
	}
	companyID, err := requireUUID(row, "company_id")
	if err != nil {
		return nil, err
	}
	role, err := requireEnum(row, "role", domain.CompanyUserRoles)
	if err != nil {
		return nil, err
	}
	expiresAt, err := requireTime(row, "expires_at")
	if err != nil {
		return nil, err
	}
	used, err := requireBool(row, "has_been_used")
	if err != nil {
		return nil, err
	}
	return &domain.CompanyUserPermissionToken{
		ID:          domain.NewCompanyUserPermissionTokenID(id),
		Token:       token,
		UserName:    userName,
		UserEmail:   userEmail,
		CompanyID:   domain.NewCompanyID(companyID),
		Role:        role,
		ExpiresAt:   expiresAt,
		HasBeenUsed: used,
	}, nil
}

// RepositoryUserPermissionTokenFromBackend decodes a
// repository_user_permission_token row.
func RepositoryUserPermissionTokenFromBackend(row Row) (*domain.RepositoryUserPermissionToken, error) {
	id, err := requireUUID(row, "id")
	if err != nil {
		return nil, err
	}
	token, err := requireString(row, "token")
	if err != nil {
		return nil, err
	}
	userName, err := optionalString(row, "user_name")
	if err != nil {
		return nil, err
	}
	userEmail, err := optionalString(row, "user_email")
	if err != nil {
		return nil, err
	}
	ownerLogin, err := requireString(row, "user_github_owner_login")
	if err != nil {
		return nil, err
	}
	repoOwner, err := requireString(row, "github_owner_login")
	if err != nil {
		return nil, err
	}
	repoName, err := requireString(row, "github_repository_name")
	if err != nil {
		return nil, err
	}
	role, err := requireEnum(row, "role", domain.RepositoryUserRoles)
	if err != nil {
		return nil, err
	}
	dowRate, err := optionalInt(row, "dow_rate")
	if err != nil {
		return nil, err
	}
	dowCurrency, err := optionalString(row, "dow_currency")
	if err != nil {
		return nil, err
	}
	expiresAt, err := requireTime(row, "expires_at")
	if err != nil {
		return nil, err
	}
	used, err := requireBool(row, "has_been_used")
	if err != nil {
		return nil, err
	}
	return &domain.RepositoryUserPermissionToken{
		ID:                   domain.NewRepositoryUserPermissionTokenID(id),
		Token:                token,
		UserName:             userName,
		UserEmail:            userEmail,
		UserGithubOwnerLogin: ownerLogin,
		RepositoryID:         domain.NewRepositoryID(domain.NewOwnerID(repoOwner, nil), repoName, nil),
		Role:                 role,
		DowRate:              dowRate,
		DowCurrency:          dowCurrency,
		ExpiresAt:            expiresAt,
		HasBeenUsed:          used,
	}, nil
}
