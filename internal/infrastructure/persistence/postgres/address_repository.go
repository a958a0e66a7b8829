package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

const (
	insertAddressSQL = `
		INSERT INTO company_address (id, name, line_1, line_2, city, state, postal_code, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`

	updateAddressSQL = `
		UPDATE company_address
		   SET name = $2, line_1 = $3, line_2 = $4, city = $5, state = $6,
		       postal_code = $7, country = $8, updated_at = NOW()
		 WHERE id = $1`

	selectAddressSQL = `
		SELECT id, name, line_1, line_2, city, state, postal_code, country
		  FROM company_address`

	getAddressByIDSQL = selectAddressSQL + ` WHERE id = $1`

	getAddressByCompanySQL = `
		SELECT a.id, a.name, a.line_1, a.line_2, a.city, a.state, a.postal_code, a.country
		  FROM company_address a
		  JOIN company c ON c.address_id = a.id
		 WHERE c.id = $1`

	getAllAddressesSQL = selectAddressSQL + ` ORDER BY created_at`
)

type AddressRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.AddressRepository = (*AddressRepositoryImpl)(nil)

func NewAddressRepository(pool *pgxpool.Pool) *AddressRepositoryImpl {
	return &AddressRepositoryImpl{pool: pool}
}

func (r *AddressRepositoryImpl) Insert(ctx context.Context, address *domain.Address) error {
	return exec(ctx, r.pool, insertAddressSQL,
		address.ID.UUID, address.Name, address.Line1, address.Line2,
		address.City, address.State, address.PostalCode, address.Country)
}

func (r *AddressRepositoryImpl) Update(ctx context.Context, address *domain.Address) error {
	return exec(ctx, r.pool, updateAddressSQL,
		address.ID.UUID, address.Name, address.Line1, address.Line2,
		address.City, address.State, address.PostalCode, address.Country)
}

func (r *AddressRepositoryImpl) GetByID(ctx context.Context, id domain.CompanyAddressID) (*domain.Address, error) {
	return queryOne(ctx, r.pool, "company_address", decode.AddressFromBackend, getAddressByIDSQL, id.UUID)
}

func (r *AddressRepositoryImpl) GetByCompanyID(ctx context.Context, id domain.CompanyID) (*domain.Address, error) {
	return queryOne(ctx, r.pool, "company_address", decode.AddressFromBackend, getAddressByCompanySQL, id.UUID)
}

func (r *AddressRepositoryImpl) GetAll(ctx context.Context) ([]*domain.Address, error) {
	return queryAll(ctx, r.pool, decode.AddressFromBackend, getAllAddressesSQL)
}
