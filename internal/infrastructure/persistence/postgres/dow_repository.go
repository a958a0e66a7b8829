package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// The balance is derived on every read: paid manual invoices plus paid Stripe
// DoW lines, minus funding that has not been released by a rejection.
// Company-scoped queries credit and debit through the membership table, so
// every member spends from the shared pot.
const (
	dowManualUserSQL = `
		SELECT COALESCE(SUM(dow_amount), 0)::bigint
		  FROM manual_invoice
		 WHERE paid AND user_id = $1`

	dowManualCompanySQL = `
		SELECT COALESCE(SUM(dow_amount), 0)::bigint
		  FROM manual_invoice
		 WHERE paid AND company_id = $1`

	dowStripeUserSQL = `
		SELECT COALESCE(SUM(l.quantity * p.unit_amount), 0)::bigint
		  FROM stripe_invoice_line l
		  JOIN stripe_invoice i ON i.stripe_id = l.invoice_id
		  JOIN stripe_product p ON p.stripe_id = l.product_id
		  JOIN stripe_customer c ON c.stripe_id = l.customer_id
		 WHERE i.paid AND p.unit = $2 AND c.user_id = $1`

	dowStripeCompanySQL = `
		SELECT COALESCE(SUM(l.quantity * p.unit_amount), 0)::bigint
		  FROM stripe_invoice_line l
		  JOIN stripe_invoice i ON i.stripe_id = l.invoice_id
		  JOIN stripe_product p ON p.stripe_id = l.product_id
		  JOIN stripe_customer c ON c.stripe_id = l.customer_id
		  JOIN user_company uc ON uc.user_id = c.user_id
		 WHERE i.paid AND p.unit = $2 AND uc.company_id = $1`

	dowFundingUserSQL = `
		SELECT COALESCE(SUM(f.dow_amount), 0)::bigint
		  FROM issue_funding f
		  LEFT JOIN managed_issue m
		    ON (m.github_owner_login, m.github_repository_name, m.github_number)
		     = (f.github_owner_login, f.github_repository_name, f.github_number)
		 WHERE f.user_id = $1 AND (m.id IS NULL OR m.state <> 'rejected')`

	dowFundingCompanySQL = `
		SELECT COALESCE(SUM(f.dow_amount), 0)::bigint
		  FROM issue_funding f
		  JOIN user_company uc ON uc.user_id = f.user_id
		  LEFT JOIN managed_issue m
		    ON (m.github_owner_login, m.github_repository_name, m.github_number)
		     = (f.github_owner_login, f.github_repository_name, f.github_number)
		 WHERE uc.company_id = $1 AND (m.id IS NULL OR m.state <> 'rejected')`
)

type DowRepositoryImpl struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

var _ ports.DowRepository = (*DowRepositoryImpl)(nil)

func NewDowRepository(pool *pgxpool.Pool, logger zerolog.Logger) *DowRepositoryImpl {
	return &DowRepositoryImpl{pool: pool, logger: logger}
}

// GetAvailableDoWs computes the spendable balance for a user, or for a
// company when companyID is set. A negative result means credits were
// retracted after they were spent; it is reported as-is so the books stay
// honest, with a warning for operators.
func (r *DowRepositoryImpl) GetAvailableDoWs(ctx context.Context, userID domain.UserID, companyID *domain.CompanyID) (int64, error) {
	manualSQL, stripeSQL, fundingSQL := dowManualUserSQL, dowStripeUserSQL, dowFundingUserSQL
	var scope any = userID.UUID
	if companyID != nil {
		manualSQL, stripeSQL, fundingSQL = dowManualCompanySQL, dowStripeCompanySQL, dowFundingCompanySQL
		scope = companyID.UUID
	}

	var manual, stripe, funded int64
	if err := r.pool.QueryRow(ctx, manualSQL, scope).Scan(&manual); err != nil {
		return 0, classify(err)
	}
	if err := r.pool.QueryRow(ctx, stripeSQL, scope, domain.DowUnit).Scan(&stripe); err != nil {
		return 0, classify(err)
	}
	if err := r.pool.QueryRow(ctx, fundingSQL, scope).Scan(&funded); err != nil {
		return 0, classify(err)
	}

	available := manual + stripe - funded
	if available < 0 {
		event := r.logger.Warn().
			Int64("available", available).
			Int64("manual", manual).
			Int64("stripe", stripe).
			Int64("funded", funded).
			Str("user_id", userID.String())
		if companyID != nil {
			event = event.Str("company_id", companyID.String())
		}
		event.Msg("negative DoW balance")
	}
	return available, nil
}
