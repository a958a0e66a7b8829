package ports

import (
	"context"

	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// UserRepository defines persistence for platform users (both variants).
// Keyed lookups return (nil, nil) when no row matches.
type UserRepository interface {
	InsertLocal(ctx context.Context, user *domain.User) error
	// InsertGithub upserts the GitHub owner profile and the user row keyed by
	// the third-party id in one transaction; re-login refreshes profile
	// fields instead of erroring.
	InsertGithub(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByThirdPartyID(ctx context.Context, provider domain.Provider, id domain.ThirdPartyUserID) (*domain.User, error)
	SetEmailVerified(ctx context.Context, id domain.UserID) error
	GetAll(ctx context.Context) ([]*domain.User, error)
}

// CompanyRepository defines persistence for companies.
type CompanyRepository interface {
	// Insert creates the company and its contact-person junction row in one
	// transaction; the contact may be nil.
	Insert(ctx context.Context, company *domain.Company, role domain.CompanyUserRole) (*domain.Company, error)
	Update(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id domain.CompanyID) (*domain.Company, error)
	GetAll(ctx context.Context) ([]*domain.Company, error)
}

// AddressRepository defines persistence for company addresses.
type AddressRepository interface {
	Insert(ctx context.Context, address *domain.Address) error
	Update(ctx context.Context, address *domain.Address) error
	GetByID(ctx context.Context, id domain.CompanyAddressID) (*domain.Address, error)
	GetByCompanyID(ctx context.Context, id domain.CompanyID) (*domain.Address, error)
	GetAll(ctx context.Context) ([]*domain.Address, error)
}

// UserCompanyRepository manages company membership rows.
type UserCompanyRepository interface {
	Insert(ctx context.Context, userID domain.UserID, companyID domain.CompanyID, role domain.CompanyUserRole) error
	Delete(ctx context.Context, userID domain.UserID, companyID domain.CompanyID) error
	GetByUserID(ctx context.Context, userID domain.UserID) ([]domain.CompanyID, error)
	GetByCompanyID(ctx context.Context, companyID domain.CompanyID) ([]domain.UserID, error)
}

// OwnerRepository defines persistence for GitHub owners.
type OwnerRepository interface {
	InsertOrUpdate(ctx context.Context, owner *domain.Owner) error
	GetByID(ctx context.Context, id domain.OwnerID) (*domain.Owner, error)
	GetAll(ctx context.Context) ([]*domain.Owner, error)
}

// RepositoryRepository defines persistence for GitHub repositories.
type RepositoryRepository interface {
	InsertOrUpdate(ctx context.Context, repository *domain.Repository) error
	GetByID(ctx context.Context, id domain.RepositoryID) (*domain.Repository, error)
	GetAll(ctx context.Context) ([]*domain.Repository, error)
}

// IssueRepository defines persistence for GitHub issues.
type IssueRepository interface {
	InsertOrUpdate(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id domain.IssueID) (*domain.Issue, error)
	GetByRepositoryID(ctx context.Context, id domain.RepositoryID) ([]*domain.Issue, error)
}

// ManagedIssueRepository defines persistence for managed issues.
type ManagedIssueRepository interface {
	Create(ctx context.Context, managed *domain.ManagedIssue) error
	UpdateState(ctx context.Context, id domain.ManagedIssueID, state domain.ManagedIssueState) error
	GetByID(ctx context.Context, id domain.ManagedIssueID) (*domain.ManagedIssue, error)
	// GetByIssueID returns the single active managed record for an issue.
	GetByIssueID(ctx context.Context, id domain.IssueID) (*domain.ManagedIssue, error)
}

// IssueFundingRepository appends and reads the funding ledger.
type IssueFundingRepository interface {
	Create(ctx context.Context, funding *domain.IssueFunding) error
	GetByID(ctx context.Context, id domain.IssueFundingID) (*domain.IssueFunding, error)
	GetByIssueID(ctx context.Context, id domain.IssueID) ([]*domain.IssueFunding, error)
	GetAll(ctx context.Context) ([]*domain.IssueFunding, error)
}

// StripeCustomerRepository defines persistence for Stripe customer mirrors.
type StripeCustomerRepository interface {
	Insert(ctx context.Context, customer *domain.StripeCustomer) error
	GetByID(ctx context.Context, id domain.StripeCustomerID) (*domain.StripeCustomer, error)
	GetByUserID(ctx context.Context, id domain.UserID) (*domain.StripeCustomer, error)
}

// StripeProductRepository defines persistence for Stripe product mirrors.
type StripeProductRepository interface {
	Insert(ctx context.Context, product *domain.StripeProduct) error
	GetByID(ctx context.Context, id domain.StripeProductID) (*domain.StripeProduct, error)
	GetAll(ctx context.Context) ([]*domain.StripeProduct, error)
}

// StripeInvoiceRepository defines persistence for Stripe invoice mirrors.
// Insert writes header and lines all-or-nothing.
type StripeInvoiceRepository interface {
	Insert(ctx context.Context, invoice *domain.StripeInvoice) error
	GetByID(ctx context.Context, id domain.StripeInvoiceID) (*domain.StripeInvoice, error)
	GetAllInvoicePaidBy(ctx context.Context, userID domain.UserID) ([]*domain.StripeInvoice, error)
}

// ManualInvoiceRepository defines persistence for manually issued invoices.
type ManualInvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.ManualInvoice) error
	SetPaid(ctx context.Context, id domain.ManualInvoiceID, paid bool) error
	GetByID(ctx context.Context, id domain.ManualInvoiceID) (*domain.ManualInvoice, error)
	GetAllInvoicePaidBy(ctx context.Context, userID domain.UserID) ([]*domain.ManualInvoice, error)
	GetAll(ctx context.Context) ([]*domain.ManualInvoice, error)
}

// DowRepository computes the derived Days-of-Work balance. The value is never
// persisted; it is recomputed on every call.
type DowRepository interface {
	GetAvailableDoWs(ctx context.Context, userID domain.UserID, companyID *domain.CompanyID) (int64, error)
}

// CompanyUserPermissionTokenRepository manages single-use company invites.
// Create removes any previous token for the same (email, company) pair.
type CompanyUserPermissionTokenRepository interface {
	Create(ctx context.Context, token *domain.CompanyUserPermissionToken) error
	GetByToken(ctx context.Context, token string) (*domain.CompanyUserPermissionToken, error)
	GetByUserEmail(ctx context.Context, email string, companyID domain.CompanyID) ([]*domain.CompanyUserPermissionToken, error)
	SetAsUsed(ctx context.Context, id domain.CompanyUserPermissionTokenID) error
	Delete(ctx context.Context, id domain.CompanyUserPermissionTokenID) error
}

// RepositoryUserPermissionTokenRepository manages single-use repository invites.
type RepositoryUserPermissionTokenRepository interface {
	Create(ctx context.Context, token *domain.RepositoryUserPermissionToken) error
	GetByToken(ctx context.Context, token string) (*domain.RepositoryUserPermissionToken, error)
	GetByRepositoryID(ctx context.Context, id domain.RepositoryID) ([]*domain.RepositoryUserPermissionToken, error)
	SetAsUsed(ctx context.Context, id domain.RepositoryUserPermissionTokenID) error
	Delete(ctx context.Context, id domain.RepositoryUserPermissionTokenID) error
}

// SessionRepository defines persistence for server-side sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.UserSession, error)
	Delete(ctx context.Context, id domain.UserSessionID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
