package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

const (
	insertIssueFundingSQL = `
		INSERT INTO issue_funding (id, github_owner_login, github_repository_name, github_number,
		                           user_id, product_id, dow_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`

	selectIssueFundingSQL = `
		SELECT id, github_owner_login, github_repository_name, github_number,
		       user_id, product_id, dow_amount
		  FROM issue_funding`

	getIssueFundingByIDSQL = selectIssueFundingSQL + ` WHERE id = $1`

	getIssueFundingByIssueSQL = selectIssueFundingSQL + `
		 WHERE github_owner_login = $1 AND github_repository_name = $2 AND github_number = $3
		 ORDER BY created_at`

	getAllIssueFundingSQL = selectIssueFundingSQL + ` ORDER BY created_at`
)

// IssueFundingRepositoryImpl appends to the funding ledger. Entries are never
// updated or deleted; rejection of the managed issue releases them.
type IssueFundingRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.IssueFundingRepository = (*IssueFundingRepositoryImpl)(nil)

func NewIssueFundingRepository(pool *pgxpool.Pool) *IssueFundingRepositoryImpl {
	return &IssueFundingRepositoryImpl{pool: pool}
}

func (r *IssueFundingRepositoryImpl) Create(ctx context.Context, funding *domain.IssueFunding) error {
	return exec(ctx, r.pool, insertIssueFundingSQL,
		funding.ID.UUID,
		funding.IssueID.RepositoryID.OwnerID.Login, funding.IssueID.RepositoryID.Name, funding.IssueID.Number,
		funding.UserID.UUID, funding.ProductID.String(), funding.DowAmount)
}

func (r *IssueFundingRepositoryImpl) GetByID(ctx context.Context, id domain.IssueFundingID) (*domain.IssueFunding, error) {
	return queryOne(ctx, r.pool, "issue_funding", decode.IssueFundingFromBackend, getIssueFundingByIDSQL, id.UUID)
}

func (r *IssueFundingRepositoryImpl) GetByIssueID(ctx context.Context, id domain.IssueID) ([]*domain.IssueFunding, error) {
	return queryAll(ctx, r.pool, decode.IssueFundingFromBackend, getIssueFundingByIssueSQL,
		id.RepositoryID.OwnerID.Login, id.RepositoryID.Name, id.Number)
}

func (r *IssueFundingRepositoryImpl) GetAll(ctx context.Context) ([]*domain.IssueFunding, error) {
	return queryAll(ctx, r.pool, decode.IssueFundingFromBackend, getAllIssueFundingSQL)
}
