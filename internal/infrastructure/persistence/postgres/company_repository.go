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
	insertCompanySQL = `
		INSERT INTO company (id, tax_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())`

	setCompanyContactUserSQL = `
		UPDATE company SET contact_person_user_id = $2, updated_at = NOW() WHERE id = $1`

	setCompanyContactThirdPartySQL = `
		UPDATE company SET contact_person_third_party_id = $2, updated_at = NOW() WHERE id = $1`

	updateCompanySQL = `
		UPDATE company SET tax_id = $2, name = $3, address_id = $4, updated_at = NOW() WHERE id = $1`

	selectCompanySQL = `
		SELECT id, tax_id, name, contact_person_user_id, contact_person_third_party_id, address_id
		  FROM company`

	getCompanyByIDSQL  = selectCompanySQL + ` WHERE id = $1`
	getAllCompaniesSQL = selectCompanySQL + ` ORDER BY created_at`
)

type CompanyRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.CompanyRepository = (*CompanyRepositoryImpl)(nil)

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepositoryImpl {
	return &CompanyRepositoryImpl{pool: pool}
}

// Insert creates the company, its contact-person membership row and the
// contact column in one transaction. The membership row has to exist before
// the contact column is set because the column carries a composite foreign
// key onto the junction table.
func (r *CompanyRepositoryImpl) Insert(ctx context.Context, company *domain.Company, role domain.CompanyUserRole) (*domain.Company, error) {
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := exec(ctx, tx, insertCompanySQL, company.ID.UUID, company.TaxID, company.Name); err != nil {
			return err
		}
		if company.ContactPerson == nil {
			return nil
		}
		if userID, ok := company.ContactPerson.UserID(); ok {
			if err := exec(ctx, tx, insertUserCompanySQL, userID.UUID, company.ID.UUID, string(role)); err != nil {
				return err
			}
			return exec(ctx, tx, setCompanyContactUserSQL, company.ID.UUID, userID.UUID)
		}
		thirdPartyID, _ := company.ContactPerson.ThirdPartyUserID()
		if err := exec(ctx, tx, insertThirdPartyUserCompanySQL, thirdPartyID.String(), company.ID.UUID, string(role)); err != nil {
			return err
		}
		return exec(ctx, tx, setCompanyContactThirdPartySQL, company.ID.UUID, thirdPartyID.String())
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, company.ID)
}

func (r *CompanyRepositoryImpl) Update(ctx context.Context, company *domain.Company) error {
	var addressID any
	if company.AddressID != nil {
		addressID = company.AddressID.UUID
	}
	return exec(ctx, r.pool, updateCompanySQL, company.ID.UUID, company.TaxID, company.Name, addressID)
}

func (r *CompanyRepositoryImpl) GetByID(ctx context.Context, id domain.CompanyID) (*domain.Company, error) {
	return queryOne(ctx, r.pool, "company", decode.CompanyFromBackend, getCompanyByIDSQL, id.UUID)
}

func (r *CompanyRepositoryImpl) GetAll(ctx context.Context) ([]*domain.Company, error) {
	return queryAll(ctx, r.pool, decode.CompanyFromBackend, getAllCompaniesSQL)
}
