package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/him-Tech/web2-backend-sub000/internal/application/auth"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register   *auth.RegisterUser
	login      *auth.Login
	logout     *auth.Logout
	verify     *auth.VerifyEmail
	sendVerify *auth.SendVerification
	validate   *validator.Validate
	log        zerolog.Logger
}

func NewAuthHandler(register *auth.RegisterUser, login *auth.Login, logout *auth.Logout, verify *auth.VerifyEmail, sendVerify *auth.SendVerification, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register:   register,
		login:      login,
		logout:     logout,
		verify:     verify,
		sendVerify: sendVerify,
		validate:   validator.New(),
		log:        log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     *string `json:"name" validate:"omitempty,max=200"`
		Email    string  `json:"email" validate:"required,email,max=254"`
		Password string  `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterUserInput{
		Name:     body.Name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("email", email).Msg("register failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse(result.User))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    SanitizeEmail(body.Email),
		Password: body.Password,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	setSessionCookie(w, result.SessionToken, result.ExpiresAt)
	writeJSON(w, http.StatusOK, userResponse(result.User))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := h.logout.Execute(r.Context(), cookie.Value); err != nil {
			h.log.Debug().Err(err).Msg("logout on dead session")
		}
	}
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeErr(w, http.StatusBadRequest, "", "token required")
		return
	}
	if err := h.verify.Execute(r.Context(), token); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

func (h *AuthHandler) SendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "session required")
		return
	}
	email := user.Email()
	if email == nil {
		writeErr(w, http.StatusBadRequest, "", "account has no email")
		return
	}
	if err := h.sendVerify.Execute(r.Context(), auth.SendVerificationInput{Email: *email}); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "session required")
		return
	}
	writeJSON(w, http.StatusOK, userResponse(user))
}

func userResponse(user *domain.User) map[string]interface{} {
	resp := map[string]interface{}{
		"id":   user.ID.String(),
		"role": string(user.Role),
		"kind": string(user.Data.Kind()),
	}
	if email := user.Email(); email != nil {
		resp["email"] = *email
	}
	if local := user.Local(); local != nil {
		resp["email_verified"] = local.IsEmailVerified
		if local.Name != nil {
			resp["name"] = *local.Name
		}
	}
	if tp := user.ThirdParty(); tp != nil {
		resp["provider"] = string(tp.Provider)
		if tp.GithubOwner != nil {
			resp["github_login"] = tp.GithubOwner.ID.Login
		}
	}
	return resp
}

func setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
