package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
	"github.com/atelier-dev/atelier/internal/logger"
)

type SetupService interface {
	Available() (bool, error)
	CreateFirst(email, password, name string) (domain.Account, error)
	CreateAccount(email, password, name string, role domain.Role) (domain.Account, error)
}

type Setup struct {
	storage        SetupStorage
	minPasswordLen int
}

type SetupStorage interface {
	CountAccounts() (int, error)
	CreateFirstAccount(account domain.Account) error
	CreateAccount(account domain.Account) error
}

func NewSetup(storage SetupStorage, minPasswordLen int) *Setup {
	return &Setup{storage: storage, minPasswordLen: minPasswordLen}
}

// Available reports whether the one-time setup can still run, i.e. no
// account has ever been created.
func (s *Setup) Available() (bool, error) {
	count, err := s.storage.CountAccounts()
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// CreateFirst creates the initial superadmin. The count check here is only
// a fast path; the storage layer's guard row is what actually prevents two
// concurrent "first" accounts.
func (s *Setup) CreateFirst(email, password, name string) (domain.Account, error) {
	account, err := s.buildAccount(email, password, name, domain.RoleSuperadmin)
	if err != nil {
		return domain.Account{}, err
	}

	available, err := s.Available()
	if err != nil {
		return domain.Account{}, err
	}
	if !available {
		return domain.Account{}, internal_errors.Forbidden("Setup already completed")
	}

	if err := s.storage.CreateFirstAccount(account); err != nil {
		return domain.Account{}, err
	}
	logger.Log.Info("bootstrap account created", "email", account.Email)
	return account, nil
}

// CreateAccount adds a further admin account; superadmin-only at the router.
func (s *Setup) CreateAccount(email, password, name string, role domain.Role) (domain.Account, error) {
	if role == "" {
		role = domain.RoleAdmin
	}
	if !role.Valid() {
		return domain.Account{}, internal_errors.Validation("Unknown role")
	}

	account, err := s.buildAccount(email, password, name, role)
	if err != nil {
		return domain.Account{}, err
	}
	if err := s.storage.CreateAccount(account); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (s *Setup) buildAccount(email, password, name string, role domain.Role) (domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.Account{}, internal_errors.Validation("Email is required")
	}
	if len(password) < s.minPasswordLen {
		return domain.Account{}, internal_errors.Validation(fmt.Sprintf("Password must be at least %d characters", s.minPasswordLen))
	}
	if strings.TrimSpace(name) == "" {
		return domain.Account{}, internal_errors.Validation("Name is required")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.Account{}, err
	}

	now := time.Now().UTC()
	return domain.Account{
		Id:        uuid.New(),
		Email:     email,
		PassHash:  string(passHash),
		Name:      strings.TrimSpace(name),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
