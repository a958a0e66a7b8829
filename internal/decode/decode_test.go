package decode

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

func validationField(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	ve, ok := err.(*domerrors.ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T: %v", err, err)
	return ve.Field
}

func TestUserFromBackendLocal(t *testing.T) {
	id := uuid.New()
	row := Row{
		"id":                id,
		"kind":              "local",
		"role":              "user",
		"name":              "Ada",
		"email":             "ada@example.com",
		"is_email_verified": true,
		"hashed_password":   "$argon2id$...",
	}
	user, err := UserFromBackend(row)
	require.NoError(t, err)
	assert.Equal(t, domain.NewUserID(id), user.ID)
	require.NotNil(t, user.Local())
	assert.Nil(t, user.ThirdParty())
	assert.Equal(t, "ada@example.com", user.Local().Email)
	assert.True(t, user.Local().IsEmailVerified)
	require.NotNil(t, user.Local().Name)
	assert.Equal(t, "Ada", *user.Local().Name)
}

func TestUserFromBackendThirdParty(t *testing.T) {
	row := Row{
		"id":                 uuid.New(),
		"kind":               "third_party",
		"role":               "user",
		"provider":           "github",
		"third_party_id":     "583231",
		"emails":             []string{"octo@example.com"},
		"github_owner_login": "octocat",
		"owner_github_id":    int64(583231),
		"owner_type":         "User",
		"owner_name":         nil,
		"owner_html_url":     "https://github.com/octocat",
		"owner_avatar_url":   "https://avatars.githubusercontent.com/u/583231",
	}
	user, err := UserFromBackend(row)
	require.NoError(t, err)
	tp := user.ThirdParty()
	require.NotNil(t, tp)
	assert.Equal(t, domain.ProviderGithub, tp.Provider)
	assert.Equal(t, domain.NewThirdPartyUserID("583231"), tp.ExternalID)
	require.NotNil(t, tp.GithubOwner)
	assert.Equal(t, "octocat", tp.GithubOwner.ID.Login)
	require.NotNil(t, tp.Email())
	assert.Equal(t, "octo@example.com", *tp.Email())
}

func TestUserFromBackendFirstErrorStops(t *testing.T) {
	// Missing email and missing hashed_password: the error names the first
	// field checked, not an aggregate.
	row := Row{
		"id":                uuid.New(),
		"kind":              "local",
		"role":              "user",
		"is_email_verified": true,
	}
	_, err := UserFromBackend(row)
	assert.Equal(t, "email", validationField(t, err))
}

func TestUserFromBackendBadEnum(t *testing.T) {
	row := Row{
		"id":   uuid.New(),
		"kind": "local",
		"role": "emperor",
	}
	_, err := UserFromBackend(row)
	assert.Equal(t, "role", validationField(t, err))
	assert.Contains(t, err.Error(), "emperor")
	assert.Contains(t, err.Error(), "admin")
}

func TestNumericStringCoercion(t *testing.T) {
	row := Row{
		"id":                     uuid.New(),
		"github_owner_login":     "octocat",
		"github_repository_name": "hello-world",
		"github_number":          "42",
		"requested_dow_amount":   "5000",
		"manager_id":             uuid.New().String(),
		"contributor_visibility": "public",
		"state":                  "open",
	}
	mi, err := ManagedIssueFromBackend(row)
	require.NoError(t, err)
	assert.Equal(t, 42, mi.IssueID.Number)
	assert.Equal(t, int64(5000), mi.RequestedDowAmount)

	row["requested_dow_amount"] = "not-a-number"
	_, err = ManagedIssueFromBackend(row)
	assert.Equal(t, "requested_dow_amount", validationField(t, err))
}

func TestManualInvoiceFromBackend(t *testing.T) {
	companyID := uuid.New()
	row := Row{
		"id":         uuid.New(),
		"number":     int32(7),
		"company_id": companyID,
		"user_id":    nil,
		"paid":       true,
		"dow_amount": int64(5000),
	}
	inv, err := ManualInvoiceFromBackend(row)
	require.NoError(t, err)
	require.NotNil(t, inv.CompanyID)
	assert.Nil(t, inv.UserID)
	assert.Equal(t, domain.NewCompanyID(companyID), *inv.CompanyID)
	assert.Equal(t, int64(5000), inv.DowAmount)

	row["user_id"] = uuid.New()
	_, err = ManualInvoiceFromBackend(row)
	assert.Equal(t, "company_id", validationField(t, err))
}

func TestCompanyFromBackendContactVariants(t *testing.T) {
	userID := uuid.New()
	row := Row{
		"id":                            uuid.New(),
		"tax_id":                        nil,
		"name":                          "ACME",
		"contact_person_user_id":        userID,
		"contact_person_third_party_id": nil,
		"address_id":                    nil,
	}
	company, err := CompanyFromBackend(row)
	require.NoError(t, err)
	require.NotNil(t, company.ContactPerson)
	gotUser, ok := company.ContactPerson.UserID()
	assert.True(t, ok)
	assert.Equal(t, domain.NewUserID(userID), gotUser)
	_, ok = company.ContactPerson.ThirdPartyUserID()
	assert.False(t, ok)

	row["contact_person_third_party_id"] = "583231"
	_, err = CompanyFromBackend(row)
	assert.Equal(t, "contact_person_user_id", validationField(t, err))
}

func TestOwnerFromBackendWrongType(t *testing.T) {
	row := Row{
		"github_login": "octocat",
		"github_id":    int64(583231),
		"type":         "Robot",
		"html_url":     "https://github.com/octocat",
		"avatar_url":   "https://avatars.githubusercontent.com/u/583231",
	}
	_, err := OwnerFromBackend(row)
	assert.Equal(t, "type", validationField(t, err))
}

func TestIssueFromBackendOptionalFields(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	row := Row{
		"github_owner_login":     "octocat",
		"github_repository_name": "hello-world",
		"github_number":          int64(12),
		"github_id":              int64(99),
		"title":                  "Fix crash",
		"html_url":               "https://github.com/octocat/hello-world/issues/12",
		"created_at":             created,
		"closed_at":              nil,
		"open_by_owner_login":    "someone",
		"body":                   nil,
	}
	issue, err := IssueFromBackend(row)
	require.NoError(t, err)
	assert.Nil(t, issue.ClosedAt)
	assert.Nil(t, issue.Body)
	assert.Equal(t, created, issue.CreatedAt)
	assert.Equal(t, "someone", issue.OpenBy.Login)

	// Wrong type on an optional field is still an error.
	row["body"] = 12
	_, err = IssueFromBackend(row)
	assert.Equal(t, "body", validationField(t, err))
}

func TestPermissionTokenFromBackendExpiredStillDecodes(t *testing.T) {
	row := Row{
		"id":            uuid.New(),
		"token":         "tok_abc",
		"user_name":     nil,
		"user_email":    "dev@example.com",
		"company_id":    uuid.New(),
		"role":          "admin",
		"expires_at":    time.Now().Add(-time.Hour),
		"has_been_used": false,
	}
	token, err := CompanyUserPermissionTokenFromBackend(row)
	require.NoError(t, err)
	assert.True(t, token.Expired(time.Now()))
	assert.False(t, token.HasBeenUsed)
}
