package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
	"github.com/atelier-dev/atelier/internal/jwt"
	"github.com/atelier-dev/atelier/internal/utils"
)

// Key to store the session claims in the request context
type key int

const claimsKey key = 0

const CookieName = "accessToken"

type Auth struct {
	jwt jwt.JwtService
}

func NewAuth(jwtService jwt.JwtService) *Auth {
	return &Auth{jwt: jwtService}
}

// tokenFromRequest prefers the session cookie; API clients may send a
// bearer token instead.
func tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1], nil
		}
		return "", internal_errors.Unauthenticated("Invalid authorization header format")
	}
	return "", internal_errors.Unauthenticated("Please sign in")
}

// NeedAuth validates the inbound session token and stores its claims in the
// request context. Missing, malformed and expired tokens all fail with 401
// before any handler code runs.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.require(nil)
}

// RequireRole enforces a role on top of NeedAuth. A superadmin passes every
// gate; 403 otherwise.
func (a *Auth) RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return a.require(&role)
}

// AdminOnly gates a route on role >= admin.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.RequireRole(domain.RoleAdmin)
}

func (a *Auth) require(role *domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := tokenFromRequest(r)
			if err != nil {
				utils.WriteError(w, err)
				return
			}

			claims, err := a.jwt.DecodeToken(token)
			if err != nil {
				utils.WriteError(w, err)
				return
			}

			if role != nil && !claims.Role.Satisfies(*role) {
				utils.WriteError(w, internal_errors.Forbidden("Access denied: "+string(*role)+" role required"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MaybeAuth decodes the session token when one is present but never rejects
// the request. Public listings use it to let a logged-in admin see drafts.
func (a *Auth) MaybeAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, err := tokenFromRequest(r); err == nil {
				if claims, err := a.jwt.DecodeToken(token); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext retrieves the verified session claims, or nil for an
// unauthenticated request.
func ClaimsFromContext(r *http.Request) *domain.Claims {
	claims, ok := r.Context().Value(claimsKey).(*domain.Claims)
	if !ok {
		return nil
	}
	return claims
}
