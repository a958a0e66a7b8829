package funding

import (
	"context"

	"github.com/google/uuid"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

type ManageIssueInput struct {
	IssueID               domain.IssueID
	ManagerID             domain.UserID
	RequestedDowAmount    int64
	ContributorVisibility domain.ContributorVisibility
}

type ManageIssueResult struct {
	ManagedIssue *domain.ManagedIssue
}

// ManageIssue puts an issue under management so it can collect funding. The
// unique index on the issue key backstops the existence check against races.
type ManageIssue struct {
	managed ports.ManagedIssueRepository
}

func NewManageIssue(managed ports.ManagedIssueRepository) *ManageIssue {
	return &ManageIssue{managed: managed}
}

func (uc *ManageIssue) Execute(ctx context.Context, input ManageIssueInput) (*ManageIssueResult, error) {
	if input.RequestedDowAmount < 0 {
		return nil, domerrors.NewValidationError("requested_dow_amount", "non-negative amount", input.RequestedDowAmount)
	}
	existing, err := uc.managed.GetByIssueID(ctx, input.IssueID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.NewValidationError("issue", "issue not already managed", input.IssueID.RepositoryID.String())
	}
	managed := &domain.ManagedIssue{
		ID:                    domain.NewManagedIssueID(uuid.New()),
		IssueID:               input.IssueID,
		RequestedDowAmount:    input.RequestedDowAmount,
		ManagerID:             input.ManagerID,
		ContributorVisibility: input.ContributorVisibility,
		State:                 domain.ManagedIssueStateOpen,
	}
	if err := uc.managed.Create(ctx, managed); err != nil {
		return nil, err
	}
	return &ManageIssueResult{ManagedIssue: managed}, nil
}

// UpdateIssueState moves a managed issue between open, solved and rejected.
// Rejection releases the attached funding: the balance aggregate skips
// entries whose managed issue is rejected, so no rows need rewriting.
type UpdateIssueState struct {
	managed ports.ManagedIssueRepository
}

func NewUpdateIssueState(managed ports.ManagedIssueRepository) *UpdateIssueState {
	return &UpdateIssueState{managed: managed}
}

func (uc *UpdateIssueState) Execute(ctx context.Context, id domain.ManagedIssueID, state domain.ManagedIssueState) error {
	managed, err := uc.managed.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if managed == nil {
		return domerrors.NewValidationError("managed_issue_id", "existing managed issue", id.String())
	}
	return uc.managed.UpdateState(ctx, id, state)
}
