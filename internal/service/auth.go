package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
	"github.com/atelier-dev/atelier/internal/logger"
)

type AuthService interface {
	Login(creds domain.Credentials) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

type AuthStorage interface {
	AccountByEmail(email string) (domain.Account, error)
}

type Jwt interface {
	NewToken(account domain.Account) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage: storage, jwt: jwt}
}

func invalidCredentials() error {
	return internal_errors.Unauthenticated("Invalid credentials")
}

// Login verifies credentials and mints a session token. Unknown email and
// wrong password produce the same error so accounts can't be enumerated.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	account, err := a.storage.AccountByEmail(email)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", invalidCredentials()
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Debug("password verification failed", "error", err)
		return "", invalidCredentials()
	}

	token, err := a.jwt.NewToken(account)
	if err != nil {
		logger.Log.Error("failed to create session token", "account_id", account.Id, "error", err)
		return "", err
	}
	return token, nil
}
