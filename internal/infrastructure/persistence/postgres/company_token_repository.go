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
	deleteCompanyTokensForEmailSQL = `
		DELETE FROM company_user_permission_token
		 WHERE user_email = $1 AND company_id = $2`

	insertCompanyTokenSQL = `
		INSERT INTO company_user_permission_token
			(id, token, user_name, user_email, company_id, role, expires_at, has_been_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`

	selectCompanyTokenSQL = `
		SELECT id, token, user_name, user_email, company_id, role, expires_at, has_been_used
		  FROM company_user_permission_token`

	getCompanyTokenByTokenSQL = selectCompanyTokenSQL + ` WHERE token = $1`

	getCompanyTokensByEmailSQL = selectCompanyTokenSQL + `
		 WHERE user_email = $1 AND company_id = $2 ORDER BY created_at`

	setCompanyTokenUsedSQL = `
		UPDATE company_user_permission_token SET has_been_used = TRUE WHERE id = $1`

	deleteCompanyTokenSQL = `
		DELETE FROM company_user_permission_token WHERE id = $1`
)

// CompanyUserPermissionTokenRepositoryImpl persists single-use company
// invites. Re-inviting the same email replaces the previous token inside one
// transaction, so at most one live token exists per (email, company) pair.
type CompanyUserPermissionTokenRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.CompanyUserPermissionTokenRepository = (*CompanyUserPermissionTokenRepositoryImpl)(nil)

func NewCompanyUserPermissionTokenRepository(pool *pgxpool.Pool) *CompanyUserPermissionTokenRepositoryImpl {
	return &CompanyUserPermissionTokenRepositoryImpl{pool: pool}
}

func (r *CompanyUserPermissionTokenRepositoryImpl) Create(ctx context.Context, token *domain.CompanyUserPermissionToken) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := exec(ctx, tx, deleteCompanyTokensForEmailSQL, token.UserEmail, token.CompanyID.UUID); err != nil {
			return err
		}
		return exec(ctx, tx, insertCompanyTokenSQL,
			token.ID.UUID, token.Token, token.UserName, token.UserEmail,
			token.CompanyID.UUID, string(token.Role), token.ExpiresAt, token.HasBeenUsed)
	})
}

func (r *CompanyUserPermissionTokenRepositoryImpl) GetByToken(ctx context.Context, token string) (*domain.CompanyUserPermissionToken, error) {
	return queryOne(ctx, r.pool, "company_user_permission_token", decode.CompanyUserPermissionTokenFromBackend, getCompanyTokenByTokenSQL, token)
}

func (r *CompanyUserPermissionTokenRepositoryImpl) GetByUserEmail(ctx context.Context, email string, companyID domain.CompanyID) ([]*domain.CompanyUserPermissionToken, error) {
	return queryAll(ctx, r.pool, decode.CompanyUserPermissionTokenFromBackend, getCompanyTokensByEmailSQL, email, companyID.UUID)
}

func (r *CompanyUserPermissionTokenRepositoryImpl) SetAsUsed(ctx context.Context, id domain.CompanyUserPermissionTokenID) error {
	return exec(ctx, r.pool, setCompanyTokenUsedSQL, id.UUID)
}

func (r *CompanyUserPermissionTokenRepositoryImpl) Delete(ctx context.Context, id domain.CompanyUserPermissionTokenID) error {
	return exec(ctx, r.pool, deleteCompanyTokenSQL, id.UUID)
}
