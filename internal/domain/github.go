package domain

import "time"

// OwnerType is the kind of GitHub actor, as GitHub spells it.
type OwnerType string

const (
	OwnerTypeUser         OwnerType = "User"
	OwnerTypeOrganization OwnerType = "Organization"
)

var OwnerTypes = []OwnerType{OwnerTypeUser, OwnerTypeOrganization}

func (t OwnerType) Valid() bool {
	for _, v := range OwnerTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Owner is a GitHub user or organization.
type Owner struct {
	ID        OwnerID
	Type      OwnerType
	Name      *string
	HTMLURL   string
	AvatarURL string
}

// Repository is a GitHub repository, owned by an Owner.
type Repository struct {
	ID          RepositoryID
	HTMLURL     string
	Description *string
}

// Issue is a GitHub issue. OpenBy references the Owner that opened it.
type Issue struct {
	ID        IssueID
	Title     string
	HTMLURL   string
	CreatedAt time.Time
	ClosedAt  *time.Time
	OpenBy    OwnerID
	Body      *string
}
