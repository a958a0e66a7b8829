package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

const (
	selectOwnerSQL = `
		SELECT github_login, github_id, type, name, html_url, avatar_url
		  FROM github_owner`

	getOwnerByLoginSQL = selectOwnerSQL + ` WHERE github_login = $1`
	getAllOwnersSQL    = selectOwnerSQL + ` ORDER BY github_login`
)

// OwnerRepositoryImpl mirrors GitHub owners under their natural login key.
type OwnerRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.OwnerRepository = (*OwnerRepositoryImpl)(nil)

func NewOwnerRepository(pool *pgxpool.Pool) *OwnerRepositoryImpl {
	return &OwnerRepositoryImpl{pool: pool}
}

func (r *OwnerRepositoryImpl) InsertOrUpdate(ctx context.Context, owner *domain.Owner) error {
	return exec(ctx, r.pool, upsertGithubOwnerSQL,
		owner.ID.Login, owner.ID.GithubID, string(owner.Type), owner.Name, owner.HTMLURL, owner.AvatarURL)
}

func (r *OwnerRepositoryImpl) GetByID(ctx context.Context, id domain.OwnerID) (*domain.Owner, error) {
	return queryOne(ctx, r.pool, "github_owner", decode.OwnerFromBackend, getOwnerByLoginSQL, id.Login)
}

func (r *OwnerRepositoryImpl) GetAll(ctx context.Context) ([]*domain.Owner, error) {
	return queryAll(ctx, r.pool, decode.OwnerFromBackend, getAllOwnersSQL)
}
