package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

const (
	insertManagedIssueSQL = `
		INSERT INTO managed_issue (id, github_owner_login, github_repository_name, github_number,
		                           requested_dow_amount, manager_id, contributor_visibility, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`

	updateManagedIssueStateSQL = `
		UPDATE managed_issue SET state = $2, updated_at = NOW() WHERE id = $1`

	selectManagedIssueSQL = `
		SELECT id, github_owner_login, github_repository_name, github_number,
		       requested_dow_amount, manager_id, contributor_visibility, state
		  FROM managed_issue`

	getManagedIssueByIDSQL = selectManagedIssueSQL + ` WHERE id = $1`

	// Rejected records stay behind as history; only one non-rejected record
	// may exist per issue, and more than one is an integrity fault.
	getManagedIssueByIssueSQL = selectManagedIssueSQL + `
		 WHERE github_owner_login = $1 AND github_repository_name = $2 AND github_number = $3
		   AND state <> 'rejected'`
)

type ManagedIssueRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.ManagedIssueRepository = (*ManagedIssueRepositoryImpl)(nil)

func NewManagedIssueRepository(pool *pgxpool.Pool) *ManagedIssueRepositoryImpl {
	return &ManagedIssueRepositoryImpl{pool: pool}
}

func (r *ManagedIssueRepositoryImpl) Create(ctx context.Context, managed *domain.ManagedIssue) error {
	return exec(ctx, r.pool, insertManagedIssueSQL,
		managed.ID.UUID,
		managed.IssueID.RepositoryID.OwnerID.Login, managed.IssueID.RepositoryID.Name, managed.IssueID.Number,
		managed.RequestedDowAmount, managed.ManagerID.UUID,
		string(managed.ContributorVisibility), string(managed.State))
}

func (r *ManagedIssueRepositoryImpl) UpdateState(ctx context.Context, id domain.ManagedIssueID, state domain.ManagedIssueState) error {
	return exec(ctx, r.pool, updateManagedIssueStateSQL, id.UUID, string(state))
}

func (r *ManagedIssueRepositoryImpl) GetByID(ctx context.Context, id domain.ManagedIssueID) (*domain.ManagedIssue, error) {
	return queryOne(ctx, r.pool, "managed_issue", decode.ManagedIssueFromBackend, getManagedIssueByIDSQL, id.UUID)
}

func (r *ManagedIssueRepositoryImpl) GetByIssueID(ctx context.Context, id domain.IssueID) (*domain.ManagedIssue, error) {
	return queryOne(ctx, r.pool, "managed_issue", decode.ManagedIssueFromBackend, getManagedIssueByIssueSQL,
		id.RepositoryID.OwnerID.Login, id.RepositoryID.Name, id.Number)
}
