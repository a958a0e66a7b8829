package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
)

// GithubHandler mirrors GitHub entities pushed by the back office. The body
// carries raw GitHub API objects for one repository and its issues; every
// owner the payload references is upserted first so the foreign keys hold.
type GithubHandler struct {
	owners       ports.OwnerRepository
	repositories ports.RepositoryRepository
	issues       ports.IssueRepository
	log          zerolog.Logger
}

func NewGithubHandler(
	owners ports.OwnerRepository,
	repositories ports.RepositoryRepository,
	issues ports.IssueRepository,
	log zerolog.Logger,
) *GithubHandler {
	return &GithubHandler{
		owners:       owners,
		repositories: repositories,
		issues:       issues,
		log:          log,
	}
}

func (h *GithubHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Repository map[string]any   `json:"repository"`
		Issues     []map[string]any `json:"issues"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	repository, err := decode.RepositoryFromGithub(body.Repository)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	ownerPayload, ok := body.Repository["owner"].(map[string]any)
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "repository.owner must be an object")
		return
	}
	owner, err := decode.OwnerFromGithub(ownerPayload)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	ctx := r.Context()
	if err := h.owners.InsertOrUpdate(ctx, owner); err != nil {
		writeDomainErr(w, err)
		return
	}
	if err := h.repositories.InsertOrUpdate(ctx, repository); err != nil {
		writeDomainErr(w, err)
		return
	}

	synced := 0
	for _, payload := range body.Issues {
		issue, err := decode.IssueFromGithub(repository.ID, payload)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		if userPayload, ok := payload["user"].(map[string]any); ok {
			openBy, err := decode.OwnerFromGithub(userPayload)
			if err != nil {
				writeDomainErr(w, err)
				return
			}
			if err := h.owners.InsertOrUpdate(ctx, openBy); err != nil {
				writeDomainErr(w, err)
				return
			}
		}
		if err := h.issues.InsertOrUpdate(ctx, issue); err != nil {
			writeDomainErr(w, err)
			return
		}
		synced++
	}

	h.log.Info().
		Str("owner", owner.ID.Login).
		Str("repository", repository.ID.Name).
		Int("issues", synced).
		Msg("github mirror synced")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"owner":      owner.ID.Login,
		"repository": repository.ID.Name,
		"issues":     synced,
	})
}
