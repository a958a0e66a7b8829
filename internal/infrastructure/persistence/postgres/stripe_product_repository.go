package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

const (
	insertStripeProductSQL = `
		INSERT INTO stripe_product (stripe_id, unit, unit_amount, recurring, created_at)
		VALUES ($1, $2, $3, $4, NOW())`

	selectStripeProductSQL = `
		SELECT stripe_id, unit, unit_amount, recurring FROM stripe_product`

	getStripeProductByIDSQL = selectStripeProductSQL + ` WHERE stripe_id = $1`
	getAllStripeProductsSQL = selectStripeProductSQL + ` ORDER BY stripe_id`
)

type StripeProductRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.StripeProductRepository = (*StripeProductRepositoryImpl)(nil)

func NewStripeProductRepository(pool *pgxpool.Pool) *StripeProductRepositoryImpl {
	return &StripeProductRepositoryImpl{pool: pool}
}

func (r *StripeProductRepositoryImpl) Insert(ctx context.Context, product *domain.StripeProduct) error {
	return exec(ctx, r.pool, insertStripeProductSQL,
		product.ID.String(), product.Unit, product.UnitAmount, product.Recurring)
}

func (r *StripeProductRepositoryImpl) GetByID(ctx context.Context, id domain.StripeProductID) (*domain.StripeProduct, error) {
	return queryOne(ctx, r.pool, "stripe_product", decode.StripeProductFromBackend, getStripeProductByIDSQL, id.String())
}

func (r *StripeProductRepositoryImpl) GetAll(ctx context.Context) ([]*domain.StripeProduct, error) {
	return queryAll(ctx, r.pool, decode.StripeProductFromBackend, getAllStripeProductsSQL)
}
