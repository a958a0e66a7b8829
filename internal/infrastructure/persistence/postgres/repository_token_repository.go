package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

const (
	deleteRepositoryTokensForLoginSQL = `
		DELETE FROM repository_user_permission_token
		 WHERE user_github_owner_login = $1 AND github_owner_login = $2 AND github_repository_name = $3`

	insertRepositoryTokenSQL = `
		INSERT INTO repository_user_permission_token
			(id, token, user_name, user_email, user_github_owner_login,
			 github_owner_login, github_repository_name, role, dow_rate, dow_currency,
			 expires_at, has_been_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())`

	selectRepositoryTokenSQL = `
		SELECT id, token, user_name, user_email, user_github_owner_login,
		       github_owner_login, github_repository_name, role, dow_rate, dow_currency,
		       expires_at, has_been_used
		  FROM repository_user_permission_token`

	getRepositoryTokenByTokenSQL = selectRepositoryTokenSQL + ` WHERE token = $1`

	getRepositoryTokensByRepositorySQL = selectRepositoryTokenSQL + `
		 WHERE github_owner_login = $1 AND github_repository_name = $2 ORDER BY created_at`

	setRepositoryTokenUsedSQL = `
		UPDATE repository_user_permission_token SET has_been_used = TRUE WHERE id = $1`

	deleteRepositoryTokenSQL = `
		DELETE FROM repository_user_permission_token WHERE id = $1`
)

// RepositoryUserPermissionTokenRepositoryImpl persists single-use repository
// invites keyed by the invitee's GitHub login. Re-inviting replaces the
// previous token for the same (login, repository) pair.
type RepositoryUserPermissionTokenRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.RepositoryUserPermissionTokenRepository = (*RepositoryUserPermissionTokenRepositoryImpl)(nil)

func NewRepositoryUserPermissionTokenRepository(pool *pgxpool.Pool) *RepositoryUserPermissionTokenRepositoryImpl {
	return &RepositoryUserPermissionTokenRepositoryImpl{pool: pool}
}

func (r *RepositoryUserPermissionTokenRepositoryImpl) Create(ctx context.Context, token *domain.RepositoryUserPermissionToken) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := exec(ctx, tx, deleteRepositoryTokensForLoginSQL,
			token.UserGithubOwnerLogin, token.RepositoryID.OwnerID.Login, token.RepositoryID.Name); err != nil {
			return err
		}
		var dowRate *int64
		if token.DowRate != nil {
			rate := *token.DowRate
			dowRate = &rate
		}
		return exec(ctx, tx, insertRepositoryTokenSQL,
			token.ID.UUID, token.Token, token.UserName, token.UserEmail, token.UserGithubOwnerLogin,
			token.RepositoryID.OwnerID.Login, token.RepositoryID.Name, string(token.Role),
			dowRate, token.DowCurrency, token.ExpiresAt, token.HasBeenUsed)
	})
}

func (r *RepositoryUserPermissionTokenRepositoryImpl) GetByToken(ctx context.Context, token string) (*domain.RepositoryUserPermissionToken, error) {
	return queryOne(ctx, r.pool, "repository_user_permission_token", decode.RepositoryUserPermissionTokenFromBackend, getRepositoryTokenByTokenSQL, token)
}

func (r *RepositoryUserPermissionTokenRepositoryImpl) GetByRepositoryID(ctx context.Context, id domain.RepositoryID) ([]*domain.RepositoryUserPermissionToken, error) {
	return queryAll(ctx, r.pool, decode.RepositoryUserPermissionTokenFromBackend, getRepositoryTokensByRepositorySQL, id.OwnerID.Login, id.Name)
}

func (r *RepositoryUserPermissionTokenRepositoryImpl) SetAsUsed(ctx context.Context, id domain.RepositoryUserPermissionTokenID) error {
	return exec(ctx, r.pool, setRepositoryTokenUsedSQL, id.UUID)
}

func (r *RepositoryUserPermissionTokenRepositoryImpl) Delete(ctx context.Context, id domain.RepositoryUserPermissionTokenID) error {
	return exec(ctx, r.pool, deleteRepositoryTokenSQL, id.UUID)
}
