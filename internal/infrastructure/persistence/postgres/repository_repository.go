package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

const (
	upsertRepositorySQL = `
		INSERT INTO github_repository (github_owner_login, github_name, github_id, html_url, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (github_owner_login, github_name) DO UPDATE SET
			github_id   = EXCLUDED.github_id,
			html_url    = EXCLUDED.html_url,
			description = EXCLUDED.description,
			updated_at  = NOW()`

	selectRepositorySQL = `
		SELECT github_owner_login, github_name, github_id, html_url, description
		  FROM github_repository`

	getRepositoryByIDSQL  = selectRepositorySQL + ` WHERE github_owner_login = $1 AND github_name = $2`
	getAllRepositoriesSQL = selectRepositorySQL + ` ORDER BY github_owner_login, github_name`
)

// RepositoryRepositoryImpl mirrors GitHub repositories under the natural
// (owner login, name) key.
type RepositoryRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.RepositoryRepository = (*RepositoryRepositoryImpl)(nil)

func NewRepositoryRepository(pool *pgxpool.Pool) *RepositoryRepositoryImpl {
	return &RepositoryRepositoryImpl{pool: pool}
}

func (r *RepositoryRepositoryImpl) InsertOrUpdate(ctx context.Context, repository *domain.Repository) error {
	return exec(ctx, r.pool, upsertRepositorySQL,
		repository.ID.OwnerID.Login, repository.ID.Name, repository.ID.GithubID,
		repository.HTMLURL, repository.Description)
}

func (r *RepositoryRepositoryImpl) GetByID(ctx context.Context, id domain.RepositoryID) (*domain.Repository, error) {
	return queryOne(ctx, r.pool, "github_repository", decode.RepositoryFromBackend, getRepositoryByIDSQL, id.OwnerID.Login, id.Name)
}

func (r *RepositoryRepositoryImpl) GetAll(ctx context.Context) ([]*domain.Repository, error) {
	return queryAll(ctx, r.pool, decode.RepositoryFromBackend, getAllRepositoriesSQL)
}
