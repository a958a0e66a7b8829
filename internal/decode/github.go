package decode

import (
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// OwnerFromBackend decodes a github_owner row.
func OwnerFromBackend(row Row) (*domain.Owner, error) {
	login, err := requireString(row, "github_login")
	if err != nil {
		return nil, err
	}
	return ownerFromPrefixed(row, "", login)
}

// ownerFromPrefixed decodes the github_owner columns with an optional column
// prefix (used when the owner arrives joined onto another entity's row).
func ownerFromPrefixed(row Row, prefix, login string) (*domain.Owner, error) {
	githubID, err := requireInt(row, prefix+"github_id")
	if err != nil {
		return nil, err
	}
	ownerType, err := requireEnum(row, prefix+"type", domain.OwnerTypes)
	if err != nil {
		return nil, err
	}
	name, err := optionalString(row, prefix+"name")
	if err != nil {
		return nil, err
	}
	htmlURL, err := requireString(row, prefix+"html_url")
	if err != nil {
		return nil, err
	}
	avatarURL, err := requireString(row, prefix+"avatar_url")
	if err != nil {
		return nil, err
	}
	return &domain.Owner{
		ID:        domain.NewOwnerID(login, &githubID),
		Type:      ownerType,
		Name:      name,
		HTMLURL:   htmlURL,
		AvatarURL: avatarURL,
	}, nil
}

// RepositoryFromBackend decodes a github_repository row.
func RepositoryFromBackend(row Row) (*domain.Repository, error) {
	ownerLogin, err := requireString(row, "github_owner_login")
	if err != nil {
		return nil, err
	}
	name, err := requireString(row, "github_name")
	if err != nil {
		return nil, err
	}
	githubID, err := requireInt(row, "github_id")
	if err != nil {
		return nil, err
	}
	htmlURL, err := requireString(row, "html_url")
	if err != nil {
		return nil, err
	}
	description, err := optionalString(row, "description")
	if err != nil {
		return nil, err
	}
	return &domain.Repository{
		ID:          domain.NewRepositoryID(domain.NewOwnerID(ownerLogin, nil), name, &githubID),
		HTMLURL:     htmlURL,
		Description: description,
	}, nil
}

// issueIDFromBackend reads the composite issue key columns shared by
// github_issue, managed_issue and issue_funding rows.
func issueIDFromBackend(row Row) (domain.IssueID, error) {
	var zero domain.IssueID
	ownerLogin, err := requireString(row, "github_owner_login")
	if err != nil {
		return zero, err
	}
	repoName, err := requireString(row, "github_repository_name")
	if err != nil {
		return zero, err
	}
	number, err := requireInt(row, "github_number")
	if err != nil {
		return zero, err
	}
	repoID := domain.NewRepositoryID(domain.NewOwnerID(ownerLogin, nil), repoName, nil)
	return domain.NewIssueID(repoID, int(number), nil), nil
}

// IssueFromBackend decodes a github_issue row.
func IssueFromBackend(row Row) (*domain.Issue, error) {
	issueID, err := issueIDFromBackend(row)
	if err != nil {
		return nil, err
	}
	githubID, err := requireInt(row, "github_id")
	if err != nil {
		return nil, err
	}
	issueID.GithubID = &githubID
	title, err := requireString(row, "title")
	if err != nil {
		return nil, err
	}
	htmlURL, err := requireString(row, "html_url")
	if err != nil {
		return nil, err
	}
	createdAt, err := requireTime(row, "created_at")
	if err != nil {
		return nil, err
	}
	closedAt, err := optionalTime(row, "closed_at")
	if err != nil {
		return nil, err
	}
	openBy, err := requireString(row, "open_by_owner_login")
	if err != nil {
		return nil, err
	}
	body, err := optionalString(row, "body")
	if err != nil {
		return nil, err
	}
	return &domain.Issue{
		ID:        issueID,
		Title:     title,
		HTMLURL:   htmlURL,
		CreatedAt: createdAt,
		ClosedAt:  closedAt,
		OpenBy:    domain.NewOwnerID(openBy, nil),
		Body:      body,
	}, nil
}
