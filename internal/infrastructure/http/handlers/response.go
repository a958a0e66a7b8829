package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusInternalServerError:
		return ErrCodeInternal
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps the known business errors onto HTTP statuses; anything
// unrecognized is a 500 without leaking internals.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domerrors.ErrUserExists):
		writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, domerrors.ErrInvalidProvider):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, domerrors.ErrSessionNotFound):
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error())
	case errors.Is(err, domerrors.ErrTokenNotFound), errors.Is(err, domerrors.ErrEmailTokenInvalid):
		writeErr(w, http.StatusNotFound, ErrCodeInvalidToken, err.Error())
	case errors.Is(err, domerrors.ErrTokenUsed), errors.Is(err, domerrors.ErrTokenExpired):
		writeErr(w, http.StatusGone, ErrCodeInvalidToken, err.Error())
	case errors.Is(err, domerrors.ErrInsufficientDow):
		writeErr(w, http.StatusPaymentRequired, ErrCodeInsufficientDow, err.Error())
	default:
		var ve *domerrors.ValidationError
		var ce *domerrors.ConstraintError
		if errors.As(err, &ve) {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, ve.Error())
			return
		}
		if errors.As(err, &ce) {
			writeErr(w, http.StatusConflict, ErrCodeConflict, "conflicting data: "+string(ce.Kind)+" constraint")
			return
		}
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
