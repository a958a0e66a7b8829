package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

const (
	insertManualInvoiceSQL = `
		INSERT INTO manual_invoice (id, number, company_id, user_id, paid, dow_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	setManualInvoicePaidSQL = `
		UPDATE manual_invoice SET paid = $2, updated_at = NOW() WHERE id = $1`

	selectManualInvoiceSQL = `
		SELECT id, number, company_id, user_id, paid, dow_amount FROM manual_invoice`

	getManualInvoiceByIDSQL = selectManualInvoiceSQL + ` WHERE id = $1`

	getManualInvoicesPaidByUserSQL = selectManualInvoiceSQL + `
		 WHERE paid AND user_id = $1 ORDER BY number`

	getAllManualInvoicesSQL = selectManualInvoiceSQL + ` ORDER BY number`
)

// ManualInvoiceRepositoryImpl persists invoices issued outside Stripe. The
// company/user scope columns are mutually exclusive; chk_company_nor_user
// rejects rows with both set and the violation surfaces as a check
// ConstraintError.
type ManualInvoiceRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.ManualInvoiceRepository = (*ManualInvoiceRepositoryImpl)(nil)

func NewManualInvoiceRepository(pool *pgxpool.Pool) *ManualInvoiceRepositoryImpl {
	return &ManualInvoiceRepositoryImpl{pool: pool}
}

func (r *ManualInvoiceRepositoryImpl) Create(ctx context.Context, invoice *domain.ManualInvoice) error {
	var companyID, userID any
	if invoice.CompanyID != nil {
		companyID = invoice.CompanyID.UUID
	}
	if invoice.UserID != nil {
		userID = invoice.UserID.UUID
	}
	return exec(ctx, r.pool, insertManualInvoiceSQL,
		invoice.ID.UUID, invoice.Number, companyID, userID, invoice.Paid, invoice.DowAmount)
}

func (r *ManualInvoiceRepositoryImpl) SetPaid(ctx context.Context, id domain.ManualInvoiceID, paid bool) error {
	return exec(ctx, r.pool, setManualInvoicePaidSQL, id.UUID, paid)
}

func (r *ManualInvoiceRepositoryImpl) GetByID(ctx context.Context, id domain.ManualInvoiceID) (*domain.ManualInvoice, error) {
	return queryOne(ctx, r.pool, "manual_invoice", decode.ManualInvoiceFromBackend, getManualInvoiceByIDSQL, id.UUID)
}

func (r *ManualInvoiceRepositoryImpl) GetAllInvoicePaidBy(ctx context.Context, userID domain.UserID) ([]*domain.ManualInvoice, error) {
	return queryAll(ctx, r.pool, decode.ManualInvoiceFromBackend, getManualInvoicesPaidByUserSQL, userID.UUID)
}

func (r *ManualInvoiceRepositoryImpl) GetAll(ctx context.Context) ([]*domain.ManualInvoice, error) {
	return queryAll(ctx, r.pool, decode.ManualInvoiceFromBackend, getAllManualInvoicesSQL)
}
