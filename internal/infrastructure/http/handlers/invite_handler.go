package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/him-Tech/web2-backend-sub000/internal/application/invite"
	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/http/middleware"
)

type InviteHandler struct {
	acceptCompany    *invite.AcceptCompanyInvite
	acceptRepository *invite.AcceptRepositoryInvite
	validate         *validator.Validate
	log              zerolog.Logger
}

func NewInviteHandler(acceptCompany *invite.AcceptCompanyInvite, acceptRepository *invite.AcceptRepositoryInvite, log zerolog.Logger) *InviteHandler {
	return &InviteHandler{
		acceptCompany:    acceptCompany,
		acceptRepository: acceptRepository,
		validate:         validator.New(),
		log:              log,
	}
}

func (h *InviteHandler) AcceptCompanyInvite(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "session required")
		return
	}
	var body struct {
		Token string `json:"token" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.acceptCompany.Execute(r.Context(), user.ID, body.Token)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("company invite rejected")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"company_id": result.CompanyID.String(),
		"role":       string(result.Role),
	})
}

func (h *InviteHandler) AcceptRepositoryInvite(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "session required")
		return
	}
	var body struct {
		Token string `json:"token" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.acceptRepository.Execute(r.Context(), body.Token)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("repository invite rejected")
		writeDomainErr(w, err)
		return
	}
	resp := map[string]interface{}{
		"repository": result.RepositoryID.String(),
		"role":       string(result.Role),
	}
	if result.DowRate != nil {
		resp["dow_rate"] = *result.DowRate
	}
	if result.DowCurrency != nil {
		resp["dow_currency"] = *result.DowCurrency
	}
	writeJSON(w, http.StatusOK, resp)
}
