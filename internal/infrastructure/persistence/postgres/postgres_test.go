package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/persistence/migrate"
	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/persistence/postgres"
)

// Set TEST_DATABASE_URL to a throwaway database to run these tests. The schema
// is dropped and recreated on every test.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, migrate.Down(ctx, pool))
	require.NoError(t, migrate.Up(ctx, pool))
	return pool
}

var githubIDSeq atomic.Int64

func nextGithubID() int64 {
	return 1_000_000 + githubIDSeq.Add(1)
}

func seedLocalUser(t *testing.T, ctx context.Context, users *postgres.UserRepositoryImpl) *domain.User {
	t.Helper()
	email := fmt.Sprintf("%s@example.com", uuid.NewString())
	user := &domain.User{
		ID:   domain.NewUserID(uuid.New()),
		Role: domain.UserRoleUser,
		Data: domain.LocalUser{Email: email, HashedPassword: "$argon2id$fake"},
	}
	require.NoError(t, users.InsertLocal(ctx, user))
	return user
}

func seedIssue(t *testing.T, ctx context.Context, pool *pgxpool.Pool, login, repoName string, number int) domain.IssueID {
	t.Helper()
	owners := postgres.NewOwnerRepository(pool)
	repositories := postgres.NewRepositoryRepository(pool)
	issues := postgres.NewIssueRepository(pool)

	ownerGithubID := nextGithubID()
	ownerID := domain.NewOwnerID(login, &ownerGithubID)
	require.NoError(t, owners.InsertOrUpdate(ctx, &domain.Owner{
		ID:        ownerID,
		Type:      domain.OwnerTypeUser,
		HTMLURL:   "https://github.com/" + login,
		AvatarURL: "https://avatars.example.com/" + login,
	}))

	repoGithubID := nextGithubID()
	repoID := domain.NewRepositoryID(ownerID, repoName, &repoGithubID)
	require.NoError(t, repositories.InsertOrUpdate(ctx, &domain.Repository{
		ID:      repoID,
		HTMLURL: "https://github.com/" + login + "/" + repoName,
	}))

	issueGithubID := nextGithubID()
	issueID := domain.NewIssueID(repoID, number, &issueGithubID)
	require.NoError(t, issues.InsertOrUpdate(ctx, &domain.Issue{
		ID:        issueID,
		Title:     "flaky teardown",
		HTMLURL:   fmt.Sprintf("https://github.com/%s/%s/issues/%d", login, repoName, number),
		CreatedAt: time.Now().UTC(),
		OpenBy:    ownerID,
	}))
	return issueID
}

func TestUserRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(pool)

	t.Run("missing id returns nil", func(t *testing.T) {
		got, err := users.GetByID(ctx, domain.NewUserID(uuid.New()))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("local insert and lookup", func(t *testing.T) {
		user := seedLocalUser(t, ctx, users)
		email := *user.Email()

		got, err := users.GetByEmail(ctx, email)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		require.NotNil(t, got.Local())
		assert.False(t, got.Local().IsEmailVerified)

		dup := &domain.User{
			ID:   domain.NewUserID(uuid.New()),
			Role: domain.UserRoleUser,
			Data: domain.LocalUser{Email: email, HashedPassword: "$argon2id$other"},
		}
		err = users.InsertLocal(ctx, dup)
		assert.ErrorIs(t, err, domerrors.ErrUserExists)

		require.NoError(t, users.SetEmailVerified(ctx, user.ID))
		got, err = users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.Local().IsEmailVerified)
	})

	t.Run("github insert is idempotent", func(t *testing.T) {
		ghID := nextGithubID()
		candidate := func() *domain.User {
			return &domain.User{
				ID:   domain.NewUserID(uuid.New()),
				Role: domain.UserRoleUser,
				Data: domain.ThirdPartyUser{
					Provider:   domain.ProviderGithub,
					ExternalID: domain.NewThirdPartyUserID(fmt.Sprint(ghID)),
					Emails:     []string{"octocat@example.com"},
					GithubOwner: &domain.Owner{
						ID:        domain.NewOwnerID("octocat", &ghID),
						Type:      domain.OwnerTypeUser,
						HTMLURL:   "https://github.com/octocat",
						AvatarURL: "https://avatars.example.com/octocat",
					},
				},
			}
		}

		first, err := users.InsertGithub(ctx, candidate())
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := users.InsertGithub(ctx, candidate())
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.Equal(t, first.ID, second.ID)

		found, err := users.FindByThirdPartyID(ctx, domain.ProviderGithub, domain.NewThirdPartyUserID(fmt.Sprint(ghID)))
		require.NoError(t, err)
		require.NotNil(t, found)
		require.NotNil(t, found.ThirdParty())
		require.NotNil(t, found.ThirdParty().GithubOwner)
		assert.Equal(t, "octocat", found.ThirdParty().GithubOwner.ID.Login)
	})
}

func TestUserRepositoryGithubPrivateEmail(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(pool)

	// GitHub omits the email entirely when the account keeps it private. The
	// row must still satisfy the emails column, so the nil slice is stored as
	// an empty array, not NULL.
	ghID := nextGithubID()
	user, err := users.InsertGithub(ctx, &domain.User{
		ID:   domain.NewUserID(uuid.New()),
		Role: domain.UserRoleUser,
		Data: domain.ThirdPartyUser{
			Provider:   domain.ProviderGithub,
			ExternalID: domain.NewThirdPartyUserID(fmt.Sprint(ghID)),
			GithubOwner: &domain.Owner{
				ID:        domain.NewOwnerID("ghost", &ghID),
				Type:      domain.OwnerTypeUser,
				HTMLURL:   "https://github.com/ghost",
				AvatarURL: "https://avatars.example.com/ghost",
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, user.ThirdParty())
	assert.Empty(t, user.ThirdParty().Emails)

	found, err := users.FindByThirdPartyID(ctx, domain.ProviderGithub, domain.NewThirdPartyUserID(fmt.Sprint(ghID)))
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestManualInvoiceConstraints(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(pool)
	companies := postgres.NewCompanyRepository(pool)
	invoices := postgres.NewManualInvoiceRepository(pool)

	user := seedLocalUser(t, ctx, users)
	name := "ACME"
	company, err := companies.Insert(ctx, &domain.Company{ID: domain.NewCompanyID(uuid.New()), Name: &name}, domain.CompanyUserRoleAdmin)
	require.NoError(t, err)

	companyID := company.ID
	err = invoices.Create(ctx, &domain.ManualInvoice{
		ID:        domain.NewManualInvoiceID(uuid.New()),
		Number:    1,
		CompanyID: &companyID,
		UserID:    &user.ID,
		DowAmount: 100,
	})
	require.Error(t, err)
	assert.True(t, domerrors.IsConstraint(err, domerrors.ConstraintCheck))

	require.NoError(t, invoices.Create(ctx, &domain.ManualInvoice{
		ID:        domain.NewManualInvoiceID(uuid.New()),
		Number:    2,
		UserID:    &user.ID,
		Paid:      true,
		DowAmount: 100,
	}))
	paid, err := invoices.GetAllInvoicePaidBy(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, int64(100), paid[0].DowAmount)
}

func TestStripeInvoiceAtomicity(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(pool)
	customers := postgres.NewStripeCustomerRepository(pool)
	invoices := postgres.NewStripeInvoiceRepository(pool)

	user := seedLocalUser(t, ctx, users)
	customerID := domain.NewStripeCustomerID("cus_atomic")
	require.NoError(t, customers.Insert(ctx, &domain.StripeCustomer{ID: customerID, UserID: user.ID}))

	// The second line references a product that does not exist, so the header
	// must not survive either.
	invoiceID := domain.NewStripeInvoiceID("in_atomic")
	err := invoices.Insert(ctx, &domain.StripeInvoice{
		ID:           invoiceID,
		CustomerID:   customerID,
		Paid:         true,
		Currency:     "usd",
		TotalExclTax: 5000,
		Lines: []domain.StripeInvoiceLine{
			{
				ID:         domain.NewStripeInvoiceLineID("il_atomic_1"),
				InvoiceID:  invoiceID,
				CustomerID: customerID,
				ProductID:  domain.NewStripeProductID("prod_missing"),
				Quantity:   1,
			},
		},
	})
	require.Error(t, err)
	assert.True(t, domerrors.IsConstraint(err, domerrors.ConstraintForeignKey))

	got, err := invoices.GetByID(ctx, invoiceID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDowBalance(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	log := zerolog.New(os.Stderr)

	users := postgres.NewUserRepository(pool)
	customers := postgres.NewStripeCustomerRepository(pool)
	products := postgres.NewStripeProductRepository(pool)
	invoices := postgres.NewStripeInvoiceRepository(pool)
	manual := postgres.NewManualInvoiceRepository(pool)
	fundings := postgres.NewIssueFundingRepository(pool)
	dow := postgres.NewDowRepository(pool, log)

	user := seedLocalUser(t, ctx, users)

	balance, err := dow.GetAvailableDoWs(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	// Credit 3000 via a paid manual invoice and 2000 via a paid Stripe
	// invoice (20 x 100 DoW).
	require.NoError(t, manual.Create(ctx, &domain.ManualInvoice{
		ID: domain.NewManualInvoiceID(uuid.New()), Number: 10, UserID: &user.ID, Paid: true, DowAmount: 3000,
	}))
	require.NoError(t, manual.Create(ctx, &domain.ManualInvoice{
		ID: domain.NewManualInvoiceID(uuid.New()), Number: 11, UserID: &user.ID, Paid: false, DowAmount: 999,
	}))

	customerID := domain.NewStripeCustomerID("cus_dow")
	productID := domain.NewStripeProductID("prod_dow")
	require.NoError(t, customers.Insert(ctx, &domain.StripeCustomer{ID: customerID, UserID: user.ID}))
	require.NoError(t, products.Insert(ctx, &domain.StripeProduct{ID: productID, Unit: domain.DowUnit, UnitAmount: 100}))
	invoiceID := domain.NewStripeInvoiceID("in_dow")
	require.NoError(t, invoices.Insert(ctx, &domain.StripeInvoice{
		ID: invoiceID, CustomerID: customerID, Paid: true, Currency: "usd", TotalExclTax: 200_000,
		Lines: []domain.StripeInvoiceLine{{
			ID: domain.NewStripeInvoiceLineID("il_dow_1"), InvoiceID: invoiceID,
			CustomerID: customerID, ProductID: productID, Quantity: 20,
		}},
	}))

	balance, err = dow.GetAvailableDoWs(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), balance)

	// Spend 2000 on an issue.
	issueID := seedIssue(t, ctx, pool, "dow-owner", "dow-repo", 7)
	require.NoError(t, fundings.Create(ctx, &domain.IssueFunding{
		ID:        domain.NewIssueFundingID(uuid.New()),
		IssueID:   issueID,
		UserID:    user.ID,
		ProductID: productID,
		DowAmount: 2000,
	}))

	balance, err = dow.GetAvailableDoWs(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), balance)
}

func TestDowBalanceCompanyScope(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	log := zerolog.New(os.Stderr)

	users := postgres.NewUserRepository(pool)
	companies := postgres.NewCompanyRepository(pool)
	members := postgres.NewUserCompanyRepository(pool)
	products := postgres.NewStripeProductRepository(pool)
	manual := postgres.NewManualInvoiceRepository(pool)
	fundings := postgres.NewIssueFundingRepository(pool)
	dow := postgres.NewDowRepository(pool, log)

	member := seedLocalUser(t, ctx, users)
	name := "Initech"
	company, err := companies.Insert(ctx, &domain.Company{ID: domain.NewCompanyID(uuid.New()), Name: &name}, domain.CompanyUserRoleAdmin)
	require.NoError(t, err)
	require.NoError(t, members.Insert(ctx, member.ID, company.ID, domain.CompanyUserRoleSuggest))

	companyID := company.ID
	require.NoError(t, manual.Create(ctx, &domain.ManualInvoice{
		ID: domain.NewManualInvoiceID(uuid.New()), Number: 30, CompanyID: &companyID, Paid: true, DowAmount: 700,
	}))

	productID := domain.NewStripeProductID("prod_company")
	require.NoError(t, products.Insert(ctx, &domain.StripeProduct{ID: productID, Unit: domain.DowUnit, UnitAmount: 100}))
	issueID := seedIssue(t, ctx, pool, "company-owner", "company-repo", 1)
	require.NoError(t, fundings.Create(ctx, &domain.IssueFunding{
		ID:        domain.NewIssueFundingID(uuid.New()),
		IssueID:   issueID,
		UserID:    member.ID,
		ProductID: productID,
		DowAmount: 300,
	}))

	// A member's spend draws from the shared company pot.
	balance, err := dow.GetAvailableDoWs(ctx, member.ID, &companyID)
	require.NoError(t, err)
	assert.Equal(t, int64(400), balance)

	// The member's personal pot is untouched by the company credit, so the
	// spend shows up as a negative personal balance.
	personal, err := dow.GetAvailableDoWs(ctx, member.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-300), personal)
}

func TestDowBalanceReleasedByRejection(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	log := zerolog.New(os.Stderr)

	users := postgres.NewUserRepository(pool)
	products := postgres.NewStripeProductRepository(pool)
	manual := postgres.NewManualInvoiceRepository(pool)
	fundings := postgres.NewIssueFundingRepository(pool)
	managed := postgres.NewManagedIssueRepository(pool)
	dow := postgres.NewDowRepository(pool, log)

	user := seedLocalUser(t, ctx, users)
	productID := domain.NewStripeProductID("prod_reject")
	require.NoError(t, products.Insert(ctx, &domain.StripeProduct{ID: productID, Unit: domain.DowUnit, UnitAmount: 100}))
	require.NoError(t, manual.Create(ctx, &domain.ManualInvoice{
		ID: domain.NewManualInvoiceID(uuid.New()), Number: 20, UserID: &user.ID, Paid: true, DowAmount: 1000,
	}))

	issueID := seedIssue(t, ctx, pool, "reject-owner", "reject-repo", 3)
	managedID := domain.NewManagedIssueID(uuid.New())
	require.NoError(t, managed.Create(ctx, &domain.ManagedIssue{
		ID:                    managedID,
		IssueID:               issueID,
		ManagerID:             user.ID,
		ContributorVisibility: domain.ContributorVisibilityPublic,
		State:                 domain.ManagedIssueStateOpen,
	}))
	require.NoError(t, fundings.Create(ctx, &domain.IssueFunding{
		ID:        domain.NewIssueFundingID(uuid.New()),
		IssueID:   issueID,
		UserID:    user.ID,
		ProductID: productID,
		DowAmount: 600,
	}))

	balance, err := dow.GetAvailableDoWs(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(400), balance)

	// Rejecting the managed record releases its funding back to the funders.
	require.NoError(t, managed.UpdateState(ctx, managedID, domain.ManagedIssueStateRejected))

	balance, err = dow.GetAvailableDoWs(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)

	active, err := managed.GetByIssueID(ctx, issueID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestCompanyTokenReplacement(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	companies := postgres.NewCompanyRepository(pool)
	tokens := postgres.NewCompanyUserPermissionTokenRepository(pool)

	name := "Globex"
	company, err := companies.Insert(ctx, &domain.Company{ID: domain.NewCompanyID(uuid.New()), Name: &name}, domain.CompanyUserRoleAdmin)
	require.NoError(t, err)

	mint := func(token string, role domain.CompanyUserRole) *domain.CompanyUserPermissionToken {
		return &domain.CompanyUserPermissionToken{
			ID:        domain.NewCompanyUserPermissionTokenID(uuid.New()),
			Token:     token,
			UserEmail: "invitee@example.com",
			CompanyID: company.ID,
			Role:      role,
			ExpiresAt: time.Now().Add(time.Hour).UTC(),
		}
	}
	require.NoError(t, tokens.Create(ctx, mint("tok-1", domain.CompanyUserRoleRead)))
	require.NoError(t, tokens.Create(ctx, mint("tok-2", domain.CompanyUserRoleAdmin)))

	// The second create replaced the first.
	gone, err := tokens.GetByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	live, err := tokens.GetByUserEmail(ctx, "invitee@example.com", company.ID)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, "tok-2", live[0].Token)
	assert.Equal(t, domain.CompanyUserRoleAdmin, live[0].Role)

	require.NoError(t, tokens.SetAsUsed(ctx, live[0].ID))
	used, err := tokens.GetByToken(ctx, "tok-2")
	require.NoError(t, err)
	require.NotNil(t, used)
	assert.True(t, used.HasBeenUsed)
}

func TestSessionRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(pool)
	sessions := postgres.NewSessionRepository(pool)

	user := seedLocalUser(t, ctx, users)

	live := &domain.UserSession{
		ID:        domain.NewUserSessionID(uuid.New()),
		UserID:    user.ID,
		TokenHash: "hash-live",
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
		CreatedAt: time.Now().UTC(),
	}
	stale := &domain.UserSession{
		ID:        domain.NewUserSessionID(uuid.New()),
		UserID:    user.ID,
		TokenHash: "hash-stale",
		ExpiresAt: time.Now().Add(-time.Hour).UTC(),
		CreatedAt: time.Now().Add(-2 * time.Hour).UTC(),
	}
	require.NoError(t, sessions.Create(ctx, live))
	require.NoError(t, sessions.Create(ctx, stale))

	got, err := sessions.GetByTokenHash(ctx, "hash-live")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.UserID)

	deleted, err := sessions.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	goneStale, err := sessions.GetByTokenHash(ctx, "hash-stale")
	require.NoError(t, err)
	assert.Nil(t, goneStale)

	require.NoError(t, sessions.Delete(ctx, live.ID))
	goneLive, err := sessions.GetByTokenHash(ctx, "hash-live")
	require.NoError(t, err)
	assert.Nil(t, goneLive)
}
