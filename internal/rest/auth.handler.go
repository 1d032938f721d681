package rest

import (
	"net/http"
	"time"

	"storefront-be/internal/auth"
	"storefront-be/internal/user"
)

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(auth.TokenTTL),
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req user.Credentials
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, u, err := h.svc.Users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	setTokenCookie(w, token)
	respondJSON(w, http.StatusCreated, user.AuthResult{Token: token, User: u})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req user.Credentials
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, u, err := h.svc.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	setTokenCookie(w, token)
	respondJSON(w, http.StatusOK, user.AuthResult{Token: token, User: u})
}
