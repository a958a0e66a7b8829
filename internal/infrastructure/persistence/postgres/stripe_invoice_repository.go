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
	insertStripeInvoiceSQL = `
		INSERT INTO stripe_invoice (stripe_id, customer_id, paid, currency, total_excl_tax, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`

	insertStripeInvoiceLineSQL = `
		INSERT INTO stripe_invoice_line (stripe_id, invoice_id, customer_id, product_id, price_id, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`

	selectStripeInvoiceSQL = `
		SELECT stripe_id, customer_id, paid, currency, total_excl_tax FROM stripe_invoice`

	getStripeInvoiceByIDSQL = selectStripeInvoiceSQL + ` WHERE stripe_id = $1`

	getStripeInvoicesPaidByUserSQL = `
		SELECT i.stripe_id, i.customer_id, i.paid, i.currency, i.total_excl_tax
		  FROM stripe_invoice i
		  JOIN stripe_customer c ON c.stripe_id = i.customer_id
		 WHERE i.paid AND c.user_id = $1
		 ORDER BY i.created_at`

	getStripeInvoiceLinesSQL = `
		SELECT stripe_id, invoice_id, customer_id, product_id, price_id, quantity
		  FROM stripe_invoice_line
		 WHERE invoice_id = $1
		 ORDER BY stripe_id`
)

// StripeInvoiceRepositoryImpl mirrors Stripe invoices. The header and its
// lines are written in one transaction so a half-mirrored invoice can never
// be observed.
type StripeInvoiceRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.StripeInvoiceRepository = (*StripeInvoiceRepositoryImpl)(nil)

func NewStripeInvoiceRepository(pool *pgxpool.Pool) *StripeInvoiceRepositoryImpl {
	return &StripeInvoiceRepositoryImpl{pool: pool}
}

func (r *StripeInvoiceRepositoryImpl) Insert(ctx context.Context, invoice *domain.StripeInvoice) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := exec(ctx, tx, insertStripeInvoiceSQL,
			invoice.ID.String(), invoice.CustomerID.String(), invoice.Paid,
			invoice.Currency, invoice.TotalExclTax); err != nil {
			return err
		}
		for _, line := range invoice.Lines {
			var priceID *string
			if line.PriceID != nil {
				s := line.PriceID.String()
				priceID = &s
			}
			if err := exec(ctx, tx, insertStripeInvoiceLineSQL,
				line.ID.String(), invoice.ID.String(), line.CustomerID.String(),
				line.ProductID.String(), priceID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *StripeInvoiceRepositoryImpl) GetByID(ctx context.Context, id domain.StripeInvoiceID) (*domain.StripeInvoice, error) {
	invoice, err := queryOne(ctx, r.pool, "stripe_invoice", decode.StripeInvoiceFromBackend, getStripeInvoiceByIDSQL, id.String())
	if err != nil || invoice == nil {
		return invoice, err
	}
	return r.attachLines(ctx, invoice)
}

func (r *StripeInvoiceRepositoryImpl) GetAllInvoicePaidBy(ctx context.Context, userID domain.UserID) ([]*domain.StripeInvoice, error) {
	invoices, err := queryAll(ctx, r.pool, decode.StripeInvoiceFromBackend, getStripeInvoicesPaidByUserSQL, userID.UUID)
	if err != nil {
		return nil, err
	}
	for _, invoice := range invoices {
		if _, err := r.attachLines(ctx, invoice); err != nil {
			return nil, err
		}
	}
	return invoices, nil
}

func (r *StripeInvoiceRepositoryImpl) attachLines(ctx context.Context, invoice *domain.StripeInvoice) (*domain.StripeInvoice, error) {
	lines, err := queryAll(ctx, r.pool, decode.StripeInvoiceLineFromBackend, getStripeInvoiceLinesSQL, invoice.ID.String())
	if err != nil {
		return nil, err
	}
	invoice.Lines = make([]domain.StripeInvoiceLine, 0, len(lines))
	for _, line := range lines {
		invoice.Lines = append(invoice.Lines, *line)
	}
	return invoice, nil
}
