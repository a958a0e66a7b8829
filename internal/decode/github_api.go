package decode

import (
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// OwnerFromGithub decodes a GitHub user/organization API payload.
func OwnerFromGithub(data Row) (*domain.Owner, error) {
	login, err := requireString(data, "login")
	if err != nil {
		return nil, err
	}
	githubID, err := requireInt(data, "id")
	if err != nil {
		return nil, err
	}
	ownerType, err := requireEnum(data, "type", domain.OwnerTypes)
	if err != nil {
		return nil, err
	}
	name, err := optionalString(data, "name")
	if err != nil {
		return nil, err
	}
	htmlURL, err := requireString(data, "html_url")
	if err != nil {
		return nil, err
	}
	avatarURL, err := requireString(data, "avatar_url")
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

// RepositoryFromGithub decodes a GitHub repository API payload, including its
// nested owner object.
func RepositoryFromGithub(data Row) (*domain.Repository, error) {
	ownerObj, err := object(data, "owner")
	if err != nil {
		return nil, err
	}
	owner, err := OwnerFromGithub(ownerObj)
	if err != nil {
		return nil, err
	}
	name, err := requireString(data, "name")
	if err != nil {
		return nil, err
	}
	githubID, err := requireInt(data, "id")
	if err != nil {
		return nil, err
	}
	htmlURL, err := requireString(data, "html_url")
	if err != nil {
		return nil, err
	}
	description, err := optionalString(data, "description")
	if err != nil {
		return nil, err
	}
	return &domain.Repository{
		ID:          domain.NewRepositoryID(owner.ID, name, &githubID),
		HTMLURL:     htmlURL,
		Description: description,
	}, nil
}

// IssueFromGithub decodes a GitHub issue API payload. The repository is not
// embedded in the payload, so the caller supplies the repository id the issue
// was fetched for.
func IssueFromGithub(repositoryID domain.RepositoryID, data Row) (*domain.Issue, error) {
	number, err := requireInt(data, "number")
	if err != nil {
		return nil, err
	}
	githubID, err := requireInt(data, "id")
	if err != nil {
		return nil, err
	}
	title, err := requireString(data, "title")
	if err != nil {
		return nil, err
	}
	htmlURL, err := requireString(data, "html_url")
	if err != nil {
		return nil, err
	}
	createdAt, err := requireTime(data, "created_at")
	if err != nil {
		return nil, err
	}
	closedAt, err := optionalTime(data, "closed_at")
	if err != nil {
		return nil, err
	}
	userObj, err := object(data, "user")
	if err != nil {
		return nil, err
	}
	openBy, err := OwnerFromGithub(userObj)
	if err != nil {
		return nil, err
	}
	body, err := optionalString(data, "body")
	if err != nil {
		return nil, err
	}
	return &domain.Issue{
		ID:        domain.NewIssueID(repositoryID, int(number), &githubID),
		Title:     title,
		HTMLURL:   htmlURL,
		CreatedAt: createdAt,
		ClosedAt:  closedAt,
		OpenBy:    openBy.ID,
		Body:      body,
	}, nil
}
