// Package funding holds the use-cases around the Days-of-Work ledger:
// spending credits on issues, managing issues and reading balances.
package funding

import (
	"context"

	"github.com/google/uuid"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

type FundIssueInput struct {
	UserID    domain.UserID
	CompanyID *domain.CompanyID
	IssueID   domain.IssueID
	ProductID domain.StripeProductID
	DowAmount int64
}

type FundIssueResult struct {
	Funding *domain.IssueFunding
}

// FundIssue appends a funding entry after checking the spendable balance.
// The check and the insert are not atomic; a concurrent spend can still push
// the balance negative, which the balance reader reports rather than hides.
type FundIssue struct {
	fundings ports.IssueFundingRepository
	dow      ports.DowRepository
}

func NewFundIssue(fundings ports.IssueFundingRepository, dow ports.DowRepository) *FundIssue {
	return &FundIssue{fundings: fundings, dow: dow}
}

func (uc *FundIssue) Execute(ctx context.Context, input FundIssueInput) (*FundIssueResult, error) {
	if input.DowAmount <= 0 {
		return nil, domerrors.NewValidationError("dow_amount", "positive amount", input.DowAmount)
	}
	available, err := uc.dow.GetAvailableDoWs(ctx, input.UserID, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if available < input.DowAmount {
		return nil, domerrors.ErrInsufficientDow
	}
	funding := &domain.IssueFunding{
		ID:        domain.NewIssueFundingID(uuid.New()),
		IssueID:   input.IssueID,
		UserID:    input.UserID,
		ProductID: input.ProductID,
		DowAmount: input.DowAmount,
	}
	if err := uc.fundings.Create(ctx, funding); err != nil {
		return nil, err
	}
	return &FundIssueResult{Funding: funding}, nil
}
