package domain

import "time"

// RepositoryUserRole is a user's role on a managed repository.
type RepositoryUserRole string

const (
	RepositoryUserRoleAdmin RepositoryUserRole = "admin"
	RepositoryUserRoleRead  RepositoryUserRole = "read"
)

var RepositoryUserRoles = []RepositoryUserRole{RepositoryUserRoleAdmin, RepositoryUserRoleRead}

func (r RepositoryUserRole) Valid() bool {
	for _, v := range RepositoryUserRoles {
		if r == v {
			return true
		}
	}
	return false
}

// CompanyUserPermissionToken is a single-use invitation granting a role in a
// company. Expiry is a caller-side check against ExpiresAt; an expired token
// still decodes.
type CompanyUserPermissionToken struct {
	ID          CompanyUserPermissionTokenID
	Token       string
	UserName    *string
	UserEmail   string
	CompanyID   CompanyID
	Role        CompanyUserRole
	ExpiresAt   time.Time
	HasBeenUsed bool
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *CompanyUserPermissionToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// RepositoryUserPermissionToken is a single-use invitation granting a role on
// a repository, optionally with an agreed DoW rate for the invited developer.
type RepositoryUserPermissionToken struct {
	ID                   RepositoryUserPermissionTokenID
	Token                string
	UserName             *string
	UserEmail            *string
	UserGithubOwnerLogin string
	RepositoryID         RepositoryID
	Role                 RepositoryUserRole
	DowRate              *int64
	DowCurrency          *string
	ExpiresAt            time.Time
	HasBeenUsed          bool
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *RepositoryUserPermissionToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
