package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
	"github.com/atelier-dev/atelier/internal/logger"
)

type JwtService interface {
	NewToken(account domain.Account) (string, error)
	DecodeToken(jwtStr string) (*domain.Claims, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) TTL() time.Duration {
	return j.ttl
}

// NewToken mints a signed session token carrying the account's claim set.
// Sessions have a fixed lifetime; expiry requires a fresh login.
func (j *Jwt) NewToken(account domain.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":   account.Id.String(),
		"email": account.Email,
		"name":  account.Name,
		"role":  string(account.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", internal_errors.New("Can't create token", 500)
	}

	return tokenString, nil
}

// DecodeToken verifies signature and expiry and returns the typed claim set.
// Every failure mode is a 401; the guard never distinguishes causes.
func (j *Jwt) DecodeToken(jwtStr string) (*domain.Claims, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal_errors.Unauthenticated("Unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		logger.Log.Debug("token parse failed", "error", err)
		return nil, internal_errors.Unauthenticated("Invalid or expired session")
	}
	if !token.Valid {
		return nil, internal_errors.Unauthenticated("Invalid session token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, internal_errors.Unauthenticated("Invalid session token")
	}

	return claimsFromMap(mapClaims)
}

func claimsFromMap(m jwt.MapClaims) (*domain.Claims, error) {
	uid, ok := m["uid"].(string)
	if !ok {
		return nil, internal_errors.Unauthenticated("Invalid session token")
	}
	accountId, err := uuid.Parse(uid)
	if err != nil {
		return nil, internal_errors.Unauthenticated("Invalid session token")
	}
	email, _ := m["email"].(string)
	name, _ := m["name"].(string)
	roleStr, _ := m["role"].(string)
	role := domain.Role(roleStr)
	if !role.Valid() {
		return nil, internal_errors.Unauthenticated("Invalid session token")
	}

	claims := &domain.Claims{AccountId: accountId, Email: email, Name: name, Role: role}
	if iat, ok := m["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := m["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return claims, nil
}
