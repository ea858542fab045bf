package handler

import (
	"net/http"

	"github.com/pingspace-dev/pingspace/internal/api"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
	"github.com/pingspace-dev/pingspace/internal/utils"
)

var errInvalidLimit = &internal_errors.ValidationError{Message: "limit must be a positive integer"}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var body api.SignUpRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, err := h.auth.SignUp(r.Context(), body.Email, body.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setAccessCookie(w, token)
	utils.WriteJSON(w, http.StatusCreated, api.AuthResponse{AccessToken: token})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var body api.SignInRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, err := h.auth.SignIn(r.Context(), body.Email, body.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setAccessCookie(w, token)
	utils.WriteJSON(w, http.StatusOK, api.AuthResponse{AccessToken: token})
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    token,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
	})
}
