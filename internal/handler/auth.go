package handler

import (
	"net/http"

	"github.com/atelier-dev/atelier/internal/api"
	"github.com/atelier-dev/atelier/internal/domain"
	"github.com/atelier-dev/atelier/internal/middleware"
	"github.com/atelier-dev/atelier/internal/utils"
)

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Path:     "/",
		Name:     middleware.CookieName,
		Value:    value,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	token, err := h.auth.Login(domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.cfg.JwtTTL().Seconds())))
	utils.WriteMessage(w, http.StatusOK, "Logged in")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	utils.WriteMessage(w, http.StatusOK, "Logged out")
}

// Me returns the verified session identity; the admin dashboard calls it on
// load to decide whether a login is needed.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r)
	utils.WriteData(w, http.StatusOK, claims)
}
