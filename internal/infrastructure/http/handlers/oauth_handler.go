package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/github"
	"github.com/rs/zerolog"

	"github.com/him-Tech/web2-backend-sub000/internal/application/auth"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// InitOAuthProviders registers Goth providers and session store. Call once at startup.
func InitOAuthProviders(githubKey, githubSecret, callbackURL, sessionSecret string) {
	if githubKey != "" && githubSecret != "" {
		goth.UseProviders(github.New(githubKey, githubSecret, callbackURL, "user:email"))
	}
	if sessionSecret != "" {
		gothic.Store = sessions.NewCookieStore([]byte(sessionSecret))
	}
}

// OAuthBegin redirects to GitHub for consent.
func OAuthBegin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r2 := withProviderParam(r)
		if _, err := goth.GetProvider("github"); err != nil {
			writeErr(w, http.StatusBadRequest, "", "github oauth not configured")
			return
		}
		authURL, err := gothic.GetAuthURL(w, r2)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "", "internal error")
			return
		}
		http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
	}
}

// OAuthCallback completes the GitHub flow, upserts the user and opens a
// session before redirecting back to the frontend.
func OAuthCallback(callback *auth.GithubCallback, redirectURL string, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gothUser, err := gothic.CompleteUserAuth(w, withProviderParam(r))
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "", "oauth failed")
			return
		}
		result, err := callback.Execute(r.Context(), auth.GithubCallbackInput{
			Provider:   domain.ProviderGithub,
			ExternalID: domain.NewThirdPartyUserID(gothUser.UserID),
			Emails:     gothEmails(gothUser),
			Owner:      gothOwner(gothUser),
		})
		if err != nil {
			log.Error().Err(err).Str("github_login", gothUser.NickName).Msg("oauth callback failed")
			writeDomainErr(w, err)
			return
		}
		setSessionCookie(w, result.SessionToken, result.ExpiresAt)
		http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
	}
}

// withProviderParam injects the provider name where gothic looks for it.
func withProviderParam(r *http.Request) *http.Request {
	r2 := r.Clone(r.Context())
	q := r2.URL.Query()
	q.Set("provider", "github")
	r2.URL.RawQuery = q.Encode()
	return r2
}

// gothEmails never returns nil. Accounts with a private email arrive without
// one, and the emails column rejects NULL; an empty list is valid.
func gothEmails(user goth.User) []string {
	if user.Email == "" {
		return []string{}
	}
	return []string{user.Email}
}

// gothOwner captures the GitHub profile shipped with the OAuth payload. The
// numeric account id doubles as the owner's github_id.
func gothOwner(user goth.User) *domain.Owner {
	if user.NickName == "" {
		return nil
	}
	id, err := strconv.ParseInt(user.UserID, 10, 64)
	if err != nil {
		return nil
	}
	owner := &domain.Owner{
		ID:        domain.NewOwnerID(user.NickName, &id),
		Type:      domain.OwnerTypeUser,
		HTMLURL:   "https://github.com/" + user.NickName,
		AvatarURL: user.AvatarURL,
	}
	if user.Name != "" {
		name := user.Name
		owner.Name = &name
	}
	return owner
}
