package decode

import (
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// ManagedIssueFromBackend decodes a managed_issue row.
func ManagedIssueFromBackend(row Row) (*domain.ManagedIssue, error) {
	id, err := requireUUID(row, "id")
	if err != nil {
		return nil, err
	}
	issueID, err := issueIDFromBackend(row)
	if err != nil {
		return nil, err
	}
	requested, err := requireInt(row, "requested_dow_amount")
	if err != nil {
		return nil, err
	}
	managerID, err := requireUUID(row, "manager_id")
	if err != nil {
		return nil, err
	}
	visibility, err := requireEnum(row, "contributor_visibility", domain.ContributorVisibilities)
	if err != nil {
		return nil, err
	}
	state, err := requireEnum(row, "state", domain.ManagedIssueStates)
	if err != nil {
		return nil, err
	}
	return &domain.ManagedIssue{
		ID:                    domain.NewManagedIssueID(id),
		IssueID:               issueID,
		RequestedDowAmount:    requested,
		ManagerID:             domain.NewUserID(managerID),
		ContributorVisibility: visibility,
		State:                 state,
	}, nil
}

// IssueFundingFromBackend decodes an issue_funding row.
func IssueFundingFromBackend(row Row) (*domain.IssueFunding, error) {
	id, err := requireUUID(row, "id")
	if err != nil {
		return nil, err
	}
	issueID, err := issueIDFromBackend(row)
	if err != nil {
		return nil, err
	}
	userID, err := requireUUID(row, "user_id")
	if err != nil {
		return nil, err
	}
	productID, err := requireString(row, "product_id")
	if err != nil {
		return nil, err
	}
	amount, err := requireInt(row, "dow_amount")
	if err != nil {
		return nil, err
	}
	return &domain.IssueFunding{
		ID:        domain.NewIssueFundingID(id),
		IssueID:   issueID,
		UserID:    domain.NewUserID(userID),
		ProductID: domain.NewStripeProductID(productID),
		DowAmount: amount,
	}, nil
}
