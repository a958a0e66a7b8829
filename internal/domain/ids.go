package domain

import "github.com/google/uuid"

// UserID is a value object for platform user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// ThirdPartyUserID is the provider-assigned identity of an OAuth user
// (for GitHub, the numeric account id as a string).
type ThirdPartyUserID string

func NewThirdPartyUserID(id string) ThirdPartyUserID { return ThirdPartyUserID(id) }

func (t ThirdPartyUserID) String() string { return string(t) }

// CompanyID is a value object for company identity.
type CompanyID struct{ uuid.UUID }

// NewCompanyID creates a new CompanyID from uuid.
func NewCompanyID(id uuid.UUID) CompanyID { return CompanyID{UUID: id} }

// String returns the canonical string form.
func (c CompanyID) String() string { return c.UUID.String() }

// CompanyAddressID is a value object for company address identity.
type CompanyAddressID struct{ uuid.UUID }

func NewCompanyAddressID(id uuid.UUID) CompanyAddressID { return CompanyAddressID{UUID: id} }

func (a CompanyAddressID) String() string { return a.UUID.String() }

// OwnerID is the natural key of a GitHub actor: the login, plus the numeric
// GitHub id when it is known (rows decoded from our own tables always carry
// it; rows built from sparse API payloads may not).
type OwnerID struct {
	Login    string
	GithubID *int64
}

func NewOwnerID(login string, githubID *int64) OwnerID {
	return OwnerID{Login: login, GithubID: githubID}
}

func (o OwnerID) String() string { return o.Login }

// RepositoryID is the natural key of a GitHub repository.
type RepositoryID struct {
	OwnerID  OwnerID
	Name     string
	GithubID *int64
}

func NewRepositoryID(ownerID OwnerID, name string, githubID *int64) RepositoryID {
	return RepositoryID{OwnerID: ownerID, Name: name, GithubID: githubID}
}

func (r RepositoryID) String() string { return r.OwnerID.Login + "/" + r.Name }

// IssueID is the natural key of a GitHub issue.
type IssueID struct {
	RepositoryID RepositoryID
	Number       int
	GithubID     *int64
}

func NewIssueID(repositoryID RepositoryID, number int, githubID *int64) IssueID {
	return IssueID{RepositoryID: repositoryID, Number: number, GithubID: githubID}
}

// ManagedIssueID is a value object for managed issue identity.
type ManagedIssueID struct{ uuid.UUID }

func NewManagedIssueID(id uuid.UUID) ManagedIssueID { return ManagedIssueID{UUID: id} }

func (m ManagedIssueID) String() string { return m.UUID.String() }

// IssueFundingID is a value object for funding ledger entry identity.
type IssueFundingID struct{ uuid.UUID }

func NewIssueFundingID(id uuid.UUID) IssueFundingID { return IssueFundingID{UUID: id} }

func (i IssueFundingID) String() string { return i.UUID.String() }

// ManualInvoiceID is a value object for manual invoice identity.
type ManualInvoiceID struct{ uuid.UUID }

func NewManualInvoiceID(id uuid.UUID) ManualInvoiceID { return ManualInvoiceID{UUID: id} }

func (m ManualInvoiceID) String() string { return m.UUID.String() }

// CompanyUserPermissionTokenID is a value object for company invite identity.
type CompanyUserPermissionTokenID struct{ uuid.UUID }

func NewCompanyUserPermissionTokenID(id uuid.UUID) CompanyUserPermissionTokenID {
	return CompanyUserPermissionTokenID{UUID: id}
}

func (t CompanyUserPermissionTokenID) String() string { return t.UUID.String() }

// RepositoryUserPermissionTokenID is a value object for repository invite identity.
type RepositoryUserPermissionTokenID struct{ uuid.UUID }

func NewRepositoryUserPermissionTokenID(id uuid.UUID) RepositoryUserPermissionTokenID {
	return RepositoryUserPermissionTokenID{UUID: id}
}

func (t RepositoryUserPermissionTokenID) String() string { return t.UUID.String() }

// UserSessionID is a value object for session identity.
type UserSessionID struct{ uuid.UUID }

func NewUserSessionID(id uuid.UUID) UserSessionID { return UserSessionID{UUID: id} }

func (s UserSessionID) String() string { return s.UUID.String() }

// Stripe object ids are Stripe's own opaque strings ("cus_...", "in_...").
// Each gets its own named type so a customer id can never be passed where an
// invoice id is expected.
type StripeCustomerID string

func NewStripeCustomerID(id string) StripeCustomerID { return StripeCustomerID(id) }

func (s StripeCustomerID) String() string { return string(s) }

type StripeProductID string

func NewStripeProductID(id string) StripeProductID { return StripeProductID(id) }

func (s StripeProductID) String() string { return string(s) }

type StripePriceID string

func NewStripePriceID(id string) StripePriceID { return StripePriceID(id) }

func (s StripePriceID) String() string { return string(s) }

type StripeInvoiceID string

func NewStripeInvoiceID(id string) StripeInvoiceID { return StripeInvoiceID(id) }

func (s StripeInvoiceID) String() string { return string(s) }

type StripeInvoiceLineID string

func NewStripeInvoiceLineID(id string) StripeInvoiceLineID { return StripeInvoiceLineID(id) }

func (s StripeInvoiceLineID) String() string { return string(s) }
