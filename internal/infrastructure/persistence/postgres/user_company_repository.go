package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

const (
	insertUserCompanySQL = `
		INSERT INTO user_company (user_id, company_id, role, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, company_id) DO UPDATE SET role = EXCLUDED.role`

	insertThirdPartyUserCompanySQL = `
		INSERT INTO third_party_user_company (third_party_id, company_id, role, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (third_party_id, company_id) DO UPDATE SET role = EXCLUDED.role`

	deleteUserCompanySQL = `
		DELETE FROM user_company WHERE user_id = $1 AND company_id = $2`

	getCompaniesByUserSQL = `
		SELECT company_id FROM user_company WHERE user_id = $1 ORDER BY created_at`

	getUsersByCompanySQL = `
		SELECT user_id FROM user_company WHERE company_id = $1 ORDER BY created_at`
)

// UserCompanyRepositoryImpl manages the membership junction rows that scope
// company balances and permissions.
type UserCompanyRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.UserCompanyRepository = (*UserCompanyRepositoryImpl)(nil)

func NewUserCompanyRepository(pool *pgxpool.Pool) *UserCompanyRepositoryImpl {
	return &UserCompanyRepositoryImpl{pool: pool}
}

func (r *UserCompanyRepositoryImpl) Insert(ctx context.Context, userID domain.UserID, companyID domain.CompanyID, role domain.CompanyUserRole) error {
	return exec(ctx, r.pool, insertUserCompanySQL, userID.UUID, companyID.UUID, string(role))
}

func (r *UserCompanyRepositoryImpl) Delete(ctx context.Context, userID domain.UserID, companyID domain.CompanyID) error {
	return exec(ctx, r.pool, deleteUserCompanySQL, userID.UUID, companyID.UUID)
}

func (r *UserCompanyRepositoryImpl) GetByUserID(ctx context.Context, userID domain.UserID) ([]domain.CompanyID, error) {
	rows, err := r.pool.Query(ctx, getCompaniesByUserSQL, userID.UUID)
	if err != nil {
		return nil, classify(err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, classify(err)
	}
	out := make([]domain.CompanyID, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.NewCompanyID(id))
	}
	return out, nil
}

func (r *UserCompanyRepositoryImpl) GetByCompanyID(ctx context.Context, companyID domain.CompanyID) ([]domain.UserID, error) {
	rows, err := r.pool.Query(ctx, getUsersByCompanySQL, companyID.UUID)
	if err != nil {
		return nil, classify(err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, classify(err)
	}
	out := make([]domain.UserID, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.NewUserID(id))
	}
	return out, nil
}
