package domain

// ContributorVisibility controls whether the funders of a managed issue are
// shown publicly.
type ContributorVisibility string

const (
	ContributorVisibilityPublic  ContributorVisibility = "public"
	ContributorVisibilityPrivate ContributorVisibility = "private"
)

var ContributorVisibilities = []ContributorVisibility{ContributorVisibilityPublic, ContributorVisibilityPrivate}

func (v ContributorVisibility) Valid() bool {
	for _, c := range ContributorVisibilities {
		if v == c {
			return true
		}
	}
	return false
}

// ManagedIssueState is the lifecycle state of a managed issue.
type ManagedIssueState string

const (
	ManagedIssueStateOpen     ManagedIssueState = "open"
	ManagedIssueStateRejected ManagedIssueState = "rejected"
	ManagedIssueStateSolved   ManagedIssueState = "solved"
)

var ManagedIssueStates = []ManagedIssueState{ManagedIssueStateOpen, ManagedIssueStateRejected, ManagedIssueStateSolved}

func (s ManagedIssueState) Valid() bool {
	for _, v := range ManagedIssueStates {
		if s == v {
			return true
		}
	}
	return false
}

// ManagedIssue is an issue taken under management: a manager collects funding
// against it. An issue has at most one active managed record.
type ManagedIssue struct {
	ID                    ManagedIssueID
	IssueID               IssueID
	RequestedDowAmount    int64
	ManagerID             UserID
	ContributorVisibility ContributorVisibility
	State                 ManagedIssueState
}

// IssueFunding is an append-only ledger entry: a user pledged DoW credit
// against an issue.
type IssueFunding struct {
	ID        IssueFundingID
	IssueID   IssueID
	UserID    UserID
	ProductID StripeProductID
	DowAmount int64
}
