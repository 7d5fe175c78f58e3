package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
)

// --- Mocks ---

type MockAuthStorage struct {
	AccountByEmailFunc func(email string) (domain.Account, error)
}

func (m *MockAuthStorage) AccountByEmail(email string) (domain.Account, error) {
	if m.AccountByEmailFunc != nil {
		return m.AccountByEmailFunc(email)
	}
	return domain.Account{}, internal_errors.NotFound("Account not found")
}

type MockJwt struct {
	NewTokenFunc func(account domain.Account) (string, error)
}

func (m *MockJwt) NewToken(account domain.Account) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(account)
	}
	return "token", nil
}

func testAccount(t *testing.T, password string) domain.Account {
	t.Helper()
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return domain.Account{
		Id:       uuid.New(),
		Email:    "admin@example.com",
		PassHash: string(passHash),
		Name:     "Admin",
		Role:     domain.RoleAdmin,
	}
}

func TestLogin(t *testing.T) {
	account := testAccount(t, "correct horse")

	storage := &MockAuthStorage{
		AccountByEmailFunc: func(email string) (domain.Account, error) {
			if email == account.Email {
				return account, nil
			}
			return domain.Account{}, internal_errors.NotFound("Account not found")
		},
	}

	t.Run("success", func(t *testing.T) {
		auth := NewAuth(storage, &MockJwt{})
		token, err := auth.Login(domain.Credentials{Email: account.Email, Password: "correct horse"})
		require.NoError(t, err)
		assert.Equal(t, "token", token)
	})

	t.Run("email is normalized before lookup", func(t *testing.T) {
		auth := NewAuth(storage, &MockJwt{})
		_, err := auth.Login(domain.Credentials{Email: "  Admin@Example.COM ", Password: "correct horse"})
		assert.NoError(t, err)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		auth := NewAuth(storage, &MockJwt{})

		_, errUnknown := auth.Login(domain.Credentials{Email: "nobody@example.com", Password: "correct horse"})
		_, errWrongPass := auth.Login(domain.Credentials{Email: account.Email, Password: "wrong"})

		require.Error(t, errUnknown)
		require.Error(t, errWrongPass)
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
		assert.Equal(t, http.StatusUnauthorized, internal_errors.StatusCode(errUnknown))
		assert.Equal(t, http.StatusUnauthorized, internal_errors.StatusCode(errWrongPass))
	})

	t.Run("storage error is passed through", func(t *testing.T) {
		broken := &MockAuthStorage{
			AccountByEmailFunc: func(email string) (domain.Account, error) {
				return domain.Account{}, errors.New("connection refused")
			},
		}
		auth := NewAuth(broken, &MockJwt{})
		_, err := auth.Login(domain.Credentials{Email: account.Email, Password: "correct horse"})
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, internal_errors.StatusCode(err))
	})

	t.Run("token minting error is passed through", func(t *testing.T) {
		jwt := &MockJwt{NewTokenFunc: func(account domain.Account) (string, error) {
			return "", errors.New("bad key")
		}}
		auth := NewAuth(storage, jwt)
		_, err := auth.Login(domain.Credentials{Email: account.Email, Password: "correct horse"})
		assert.Error(t, err)
	})
}
