package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

const (
	upsertIssueSQL = `
		INSERT INTO github_issue (github_owner_login, github_repository_name, github_number, github_id,
		                          title, html_url, created_at, closed_at, open_by_owner_login, body, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (github_owner_login, github_repository_name, github_number) DO UPDATE SET
			github_id  = EXCLUDED.github_id,
			title      = EXCLUDED.title,
			html_url   = EXCLUDED.html_url,
			closed_at  = EXCLUDED.closed_at,
			body       = EXCLUDED.body,
			updated_at = NOW()`

	selectIssueSQL = `
		SELECT github_owner_login, github_repository_name, github_number, github_id,
		       title, html_url, created_at, closed_at, open_by_owner_login, body
		  FROM github_issue`

	getIssueByIDSQL = selectIssueSQL + `
		 WHERE github_owner_login = $1 AND github_repository_name = $2 AND github_number = $3`

	getIssuesByRepositorySQL = selectIssueSQL + `
		 WHERE github_owner_login = $1 AND github_repository_name = $2 ORDER BY github_number`
)

// IssueRepositoryImpl mirrors GitHub issues under the natural
// (owner login, repository name, number) key.
type IssueRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.IssueRepository = (*IssueRepositoryImpl)(nil)

func NewIssueRepository(pool *pgxpool.Pool) *IssueRepositoryImpl {
	return &IssueRepositoryImpl{pool: pool}
}

func (r *IssueRepositoryImpl) InsertOrUpdate(ctx context.Context, issue *domain.Issue) error {
	return exec(ctx, r.pool, upsertIssueSQL,
		issue.ID.RepositoryID.OwnerID.Login, issue.ID.RepositoryID.Name, issue.ID.Number, issue.ID.GithubID,
		issue.Title, issue.HTMLURL, issue.CreatedAt, issue.ClosedAt, issue.OpenBy.Login, issue.Body)
}

func (r *IssueRepositoryImpl) GetByID(ctx context.Context, id domain.IssueID) (*domain.Issue, error) {
	return queryOne(ctx, r.pool, "github_issue", decode.IssueFromBackend, getIssueByIDSQL,
		id.RepositoryID.OwnerID.Login, id.RepositoryID.Name, id.Number)
}

func (r *IssueRepositoryImpl) GetByRepositoryID(ctx context.Context, id domain.RepositoryID) ([]*domain.Issue, error) {
	return queryAll(ctx, r.pool, decode.IssueFromBackend, getIssuesByRepositorySQL, id.OwnerID.Login, id.Name)
}
