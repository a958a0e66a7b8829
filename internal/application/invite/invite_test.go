package invite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

type fakeCompanyTokenRepo struct {
	byToken map[string]*domain.CompanyUserPermissionToken
}

func newFakeCompanyTokenRepo() *fakeCompanyTokenRepo {
	return &fakeCompanyTokenRepo{byToken: map[string]*domain.CompanyUserPermissionToken{}}
}

func (f *fakeCompanyTokenRepo) Create(ctx context.Context, token *domain.CompanyUserPermissionToken) error {
	for raw, t := range f.byToken {
		if t.UserEmail == token.UserEmail && t.CompanyID == token.CompanyID {
			delete(f.byToken, raw)
		}
	}
	f.byToken[token.Token] = token
	return nil
}

func (f *fakeCompanyTokenRepo) GetByToken(ctx context.Context, token string) (*domain.CompanyUserPermissionToken, error) {
	return f.byToken[token], nil
}

func (f *fakeCompanyTokenRepo) GetByUserEmail(ctx context.Context, email string, companyID domain.CompanyID) ([]*domain.CompanyUserPermissionToken, error) {
	var out []*domain.CompanyUserPermissionToken
	for _, t := range f.byToken {
		if t.UserEmail == email && t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeCompanyTokenRepo) SetAsUsed(ctx context.Context, id domain.CompanyUserPermissionTokenID) error {
	for _, t := range f.byToken {
		if t.ID == id {
			t.HasBeenUsed = true
		}
	}
	return nil
}

func (f *fakeCompanyTokenRepo) Delete(ctx context.Context, id domain.CompanyUserPermissionTokenID) error {
	for raw, t := range f.byToken {
		if t.ID == id {
			delete(f.byToken, raw)
		}
	}
	return nil
}

type fakeCompanyRepo struct {
	byID map[domain.CompanyID]*domain.Company
}

func (f *fakeCompanyRepo) Insert(ctx context.Context, company *domain.Company, role domain.CompanyUserRole) (*domain.Company, error) {
	f.byID[company.ID] = company
	return company, nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, company *domain.Company) error { return nil }

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id domain.CompanyID) (*domain.Company, error) {
	return f.byID[id], nil
}

func (f *fakeCompanyRepo) GetAll(ctx context.Context) ([]*domain.Company, error) { return nil, nil }

type fakeMembers struct {
	inserted []domain.CompanyID
}

func (f *fakeMembers) Insert(ctx context.Context, userID domain.UserID, companyID domain.CompanyID, role domain.CompanyUserRole) error {
	f.inserted = append(f.inserted, companyID)
	return nil
}

func (f *fakeMembers) Delete(ctx context.Context, userID domain.UserID, companyID domain.CompanyID) error {
	return nil
}

func (f *fakeMembers) GetByUserID(ctx context.Context, userID domain.UserID) ([]domain.CompanyID, error) {
	return f.inserted, nil
}

func (f *fakeMembers) GetByCompanyID(ctx context.Context, companyID domain.CompanyID) ([]domain.UserID, error) {
	return nil, nil
}

type fakeIssuer struct{ ttl time.Duration }

func (f fakeIssuer) Generate(claims ports.InviteClaims) (string, time.Time, error) {
	return "tok-" + claims.Email + "-" + claims.Target, time.Now().Add(f.ttl), nil
}

func (f fakeIssuer) Parse(token string) (*ports.InviteClaims, error) { return nil, nil }

type recordingEnqueuer struct {
	companyEmails    []string
	repositoryEmails []string
}

func (r *recordingEnqueuer) EnqueueCompanyInviteEmail(ctx context.Context, email, companyName, inviteURL string) error {
	r.companyEmails = append(r.companyEmails, email)
	return nil
}

func (r *recordingEnqueuer) EnqueueRepositoryInviteEmail(ctx context.Context, email, repository, inviteURL string) error {
	r.repositoryEmails = append(r.repositoryEmails, email)
	return nil
}

func (r *recordingEnqueuer) EnqueueVerificationEmail(ctx context.Context, email, verifyURL string) error {
	return nil
}

func testCompany() *domain.Company {
	name := "ACME"
	return &domain.Company{ID: domain.NewCompanyID(uuid.New()), Name: &name}
}

func TestCompanyInviteLifecycle(t *testing.T) {
	company := testCompany()
	tokens := newFakeCompanyTokenRepo()
	companies := &fakeCompanyRepo{byID: map[domain.CompanyID]*domain.Company{company.ID: company}}
	enqueuer := &recordingEnqueuer{}
	create := NewCreateCompanyInvite(tokens, companies, fakeIssuer{ttl: time.Hour}, enqueuer, "https://app.example.com")

	result, err := create.Execute(context.Background(), CreateCompanyInviteInput{
		UserEmail: "dev@example.com",
		CompanyID: company.ID,
		Role:      domain.CompanyUserRoleAdmin,
	})
	require.NoError(t, err)
	assert.False(t, result.Token.HasBeenUsed)
	assert.Equal(t, []string{"dev@example.com"}, enqueuer.companyEmails)

	members := &fakeMembers{}
	accept := NewAcceptCompanyInvite(tokens, members)
	userID := domain.NewUserID(uuid.New())

	accepted, err := accept.Execute(context.Background(), userID, result.Token.Token)
	require.NoError(t, err)
	assert.Equal(t, company.ID, accepted.CompanyID)
	assert.Equal(t, domain.CompanyUserRoleAdmin, accepted.Role)
	assert.Equal(t, []domain.CompanyID{company.ID}, members.inserted)

	// Single use: the second redemption fails.
	_, err = accept.Execute(context.Background(), userID, result.Token.Token)
	assert.ErrorIs(t, err, domerrors.ErrTokenUsed)
}

func TestCompanyInviteReplacesPreviousToken(t *testing.T) {
	company := testCompany()
	tokens := newFakeCompanyTokenRepo()
	companies := &fakeCompanyRepo{byID: map[domain.CompanyID]*domain.Company{company.ID: company}}
	create := NewCreateCompanyInvite(tokens, companies, fakeIssuer{ttl: time.Hour}, &recordingEnqueuer{}, "https://app.example.com")

	first, err := create.Execute(context.Background(), CreateCompanyInviteInput{
		UserEmail: "dev@example.com", CompanyID: company.ID, Role: domain.CompanyUserRoleRead,
	})
	require.NoError(t, err)
	second, err := create.Execute(context.Background(), CreateCompanyInviteInput{
		UserEmail: "dev@example.com", CompanyID: company.ID, Role: domain.CompanyUserRoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.Token.ID, second.Token.ID)

	live, err := tokens.GetByUserEmail(context.Background(), "dev@example.com", company.ID)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, domain.CompanyUserRoleAdmin, live[0].Role)
}

func TestAcceptCompanyInviteErrors(t *testing.T) {
	tokens := newFakeCompanyTokenRepo()
	accept := NewAcceptCompanyInvite(tokens, &fakeMembers{})
	userID := domain.NewUserID(uuid.New())

	_, err := accept.Execute(context.Background(), userID, "missing")
	assert.ErrorIs(t, err, domerrors.ErrTokenNotFound)

	expired := &domain.CompanyUserPermissionToken{
		ID:        domain.NewCompanyUserPermissionTokenID(uuid.New()),
		Token:     "expired",
		UserEmail: "dev@example.com",
		CompanyID: domain.NewCompanyID(uuid.New()),
		Role:      domain.CompanyUserRoleRead,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, tokens.Create(context.Background(), expired))
	_, err = accept.Execute(context.Background(), userID, "expired")
	assert.ErrorIs(t, err, domerrors.ErrTokenExpired)
}

type fakeRepositoryTokenRepo struct {
	byToken map[string]*domain.RepositoryUserPermissionToken
}

func newFakeRepositoryTokenRepo() *fakeRepositoryTokenRepo {
	return &fakeRepositoryTokenRepo{byToken: map[string]*domain.RepositoryUserPermissionToken{}}
}

func (f *fakeRepositoryTokenRepo) Create(ctx context.Context, token *domain.RepositoryUserPermissionToken) error {
	f.byToken[token.Token] = token
	return nil
}

func (f *fakeRepositoryTokenRepo) GetByToken(ctx context.Context, token string) (*domain.RepositoryUserPermissionToken, error) {
	return f.byToken[token], nil
}

func (f *fakeRepositoryTokenRepo) GetByRepositoryID(ctx context.Context, id domain.RepositoryID) ([]*domain.RepositoryUserPermissionToken, error) {
	return nil, nil
}

func (f *fakeRepositoryTokenRepo) SetAsUsed(ctx context.Context, id domain.RepositoryUserPermissionTokenID) error {
	for _, t := range f.byToken {
		if t.ID == id {
			t.HasBeenUsed = true
		}
	}
	return nil
}

func (f *fakeRepositoryTokenRepo) Delete(ctx context.Context, id domain.RepositoryUserPermissionTokenID) error {
	return nil
}

type fakeRepositoryRepo struct {
	repo *domain.Repository
}

func (f *fakeRepositoryRepo) InsertOrUpdate(ctx context.Context, repository *domain.Repository) error {
	return nil
}

func (f *fakeRepositoryRepo) GetByID(ctx context.Context, id domain.RepositoryID) (*domain.Repository, error) {
	if f.repo != nil && f.repo.ID.String() == id.String() {
		return f.repo, nil
	}
	return nil, nil
}

func (f *fakeRepositoryRepo) GetAll(ctx context.Context) ([]*domain.Repository, error) {
	return nil, nil
}

func TestRepositoryInviteLifecycle(t *testing.T) {
	repoID := domain.NewRepositoryID(domain.NewOwnerID("octocat", nil), "hello-world", nil)
	tokens := newFakeRepositoryTokenRepo()
	repos := &fakeRepositoryRepo{repo: &domain.Repository{ID: repoID, HTMLURL: "https://github.com/octocat/hello-world"}}
	enqueuer := &recordingEnqueuer{}
	create := NewCreateRepositoryInvite(tokens, repos, fakeIssuer{ttl: time.Hour}, enqueuer, "https://app.example.com")

	email := "contributor@example.com"
	rate := int64(500)
	currency := "USD"
	result, err := create.Execute(context.Background(), CreateRepositoryInviteInput{
		UserEmail:            &email,
		UserGithubOwnerLogin: "contributor",
		RepositoryID:         repoID,
		Role:                 domain.RepositoryUserRoleAdmin,
		DowRate:              &rate,
		DowCurrency:          &currency,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{email}, enqueuer.repositoryEmails)

	accept := NewAcceptRepositoryInvite(tokens)
	accepted, err := accept.Execute(context.Background(), result.Token.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RepositoryUserRoleAdmin, accepted.Role)
	require.NotNil(t, accepted.DowRate)
	assert.Equal(t, int64(500), *accepted.DowRate)

	_, err = accept.Execute(context.Background(), result.Token.Token)
	assert.ErrorIs(t, err, domerrors.ErrTokenUsed)
}

func TestRepositoryInviteUnknownRepository(t *testing.T) {
	create := NewCreateRepositoryInvite(newFakeRepositoryTokenRepo(), &fakeRepositoryRepo{}, fakeIssuer{ttl: time.Hour}, &recordingEnqueuer{}, "https://app.example.com")
	_, err := create.Execute(context.Background(), CreateRepositoryInviteInput{
		UserGithubOwnerLogin: "contributor",
		RepositoryID:         domain.NewRepositoryID(domain.NewOwnerID("ghost", nil), "missing", nil),
		Role:                 domain.RepositoryUserRoleRead,
	})
	var ve *domerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "repository", ve.Field)
}
