package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

type fakeOwners struct {
	upserted []*domain.Owner
}

func (f *fakeOwners) InsertOrUpdate(ctx context.Context, owner *domain.Owner) error {
	f.upserted = append(f.upserted, owner)
	return nil
}

func (f *fakeOwners) GetByID(ctx context.Context, id domain.OwnerID) (*domain.Owner, error) {
	return nil, nil
}

func (f *fakeOwners) GetAll(ctx context.Context) ([]*domain.Owner, error) { return nil, nil }

type fakeRepositories struct {
	upserted []*domain.Repository
}

func (f *fakeRepositories) InsertOrUpdate(ctx context.Context, repository *domain.Repository) error {
	f.upserted = append(f.upserted, repository)
	return nil
}

func (f *fakeRepositories) GetByID(ctx context.Context, id domain.RepositoryID) (*domain.Repository, error) {
	return nil, nil
}

func (f *fakeRepositories) GetAll(ctx context.Context) ([]*domain.Repository, error) {
	return nil, nil
}

type fakeIssues struct {
	upserted []*domain.Issue
}

func (f *fakeIssues) InsertOrUpdate(ctx context.Context, issue *domain.Issue) error {
	f.upserted = append(f.upserted, issue)
	return nil
}

func (f *fakeIssues) GetByID(ctx context.Context, id domain.IssueID) (*domain.Issue, error) {
	return nil, nil
}

func (f *fakeIssues) GetByRepositoryID(ctx context.Context, id domain.RepositoryID) ([]*domain.Issue, error) {
	return nil, nil
}

func githubOwnerPayload(login string, id int64) map[string]any {
	return map[string]any{
		"login":      login,
		"id":         id,
		"type":       "User",
		"html_url":   "https://github.com/" + login,
		"avatar_url": "https://avatars.githubusercontent.com/u/1",
	}
}

func TestGithubHandlerSync(t *testing.T) {
	owners := &fakeOwners{}
	repositories := &fakeRepositories{}
	issues := &fakeIssues{}
	h := NewGithubHandler(owners, repositories, issues, zerolog.Nop())

	payload := map[string]any{
		"repository": map[string]any{
			"id":       1296269,
			"name":     "hello-world",
			"html_url": "https://github.com/octocat/hello-world",
			"owner":    githubOwnerPayload("octocat", 583231),
		},
		"issues": []map[string]any{
			{
				"id":         42,
				"number":     7,
				"title":      "flaky teardown",
				"html_url":   "https://github.com/octocat/hello-world/issues/7",
				"created_at": "2024-01-02T15:04:05Z",
				"user":       githubOwnerPayload("ghost", 10137),
			},
		},
	}
	buf, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Sync(rec, httptest.NewRequest(http.MethodPost, "/admin/github/sync", bytes.NewReader(buf)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repositories.upserted, 1)
	assert.Equal(t, "hello-world", repositories.upserted[0].ID.Name)
	require.Len(t, issues.upserted, 1)
	assert.Equal(t, "flaky teardown", issues.upserted[0].Title)
	assert.Equal(t, "ghost", issues.upserted[0].OpenBy.Login)
	// Repository owner plus the issue reporter.
	require.Len(t, owners.upserted, 2)
}

func TestGithubHandlerSyncBadRepository(t *testing.T) {
	owners := &fakeOwners{}
	h := NewGithubHandler(owners, &fakeRepositories{}, &fakeIssues{}, zerolog.Nop())

	rec := httptest.NewRecorder()
	body := bytes.NewReader([]byte(`{"repository":{"name":"hello-world"}}`))
	h.Sync(rec, httptest.NewRequest(http.MethodPost, "/admin/github/sync", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, owners.upserted)
}
