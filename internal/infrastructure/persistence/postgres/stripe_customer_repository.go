package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

const (
	insertStripeCustomerSQL = `
		INSERT INTO stripe_customer (stripe_id, user_id, created_at)
		VALUES ($1, $2, NOW())`

	selectStripeCustomerSQL = `
		SELECT stripe_id, user_id FROM stripe_customer`

	getStripeCustomerByIDSQL   = selectStripeCustomerSQL + ` WHERE stripe_id = $1`
	getStripeCustomerByUserSQL = selectStripeCustomerSQL + ` WHERE user_id = $1`
)

type StripeCustomerRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.StripeCustomerRepository = (*StripeCustomerRepositoryImpl)(nil)

func NewStripeCustomerRepository(pool *pgxpool.Pool) *StripeCustomerRepositoryImpl {
	return &StripeCustomerRepositoryImpl{pool: pool}
}

func (r *StripeCustomerRepositoryImpl) Insert(ctx context.Context, customer *domain.StripeCustomer) error {
	return exec(ctx, r.pool, insertStripeCustomerSQL, customer.ID.String(), customer.UserID.UUID)
}

func (r *StripeCustomerRepositoryImpl) GetByID(ctx context.Context, id domain.StripeCustomerID) (*domain.StripeCustomer, error) {
	return queryOne(ctx, r.pool, "stripe_customer", decode.StripeCustomerFromBackend, getStripeCustomerByIDSQL, id.String())
}

func (r *StripeCustomerRepositoryImpl) GetByUserID(ctx context.Context, id domain.UserID) (*domain.StripeCustomer, error) {
	return queryOne(ctx, r.pool, "stripe_customer", decode.StripeCustomerFromBackend, getStripeCustomerByUserSQL, id.UUID)
}
