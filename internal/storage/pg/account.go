package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
)

// AccountByEmail fetches an account, hash included. Emails are stored
// lowercased; callers normalize before lookup.
func (s *Storage) AccountByEmail(email string) (domain.Account, error) {
	return s.accountByEmail(s.db, email)
}

func (s *Storage) accountByEmail(q Querier, email string) (domain.Account, error) {
	var a domain.Account
	err := q.QueryRow(
		"SELECT id, email, password_hash, name, role, created, updated FROM accounts WHERE email = $1",
		email,
	).Scan(&a.Id, &a.Email, &a.PassHash, &a.Name, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, internal_errors.NotFound("Account not found")
		}
		return domain.Account{}, fmt.Errorf("failed to query account: %w", err)
	}
	return a, nil
}

func (s *Storage) CountAccounts() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM accounts").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

// CreateFirstAccount inserts the bootstrap account. The guard-row insert and
// the account insert share one transaction, so of any number of concurrent
// first-run attempts exactly one can ever commit; the application-level
// zero-count check is only a fast path.
func (s *Storage) CreateFirstAccount(account domain.Account) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO bootstrap_guard(id) VALUES(1)"); err != nil {
			if isUniqueViolation(err, "bootstrap_guard_pkey") {
				return internal_errors.Forbidden("Setup already completed")
			}
			return fmt.Errorf("failed to claim bootstrap guard: %w", err)
		}
		return s.insertAccount(tx, account)
	})
}

// CreateAccount inserts an additional admin account (superadmin flow).
func (s *Storage) CreateAccount(account domain.Account) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.insertAccount(tx, account)
	})
}

func (s *Storage) insertAccount(q Querier, a domain.Account) error {
	_, err := q.Exec(
		"INSERT INTO accounts(id, email, password_hash, name, role, created, updated) VALUES($1, $2, $3, $4, $5, $6, $7)",
		a.Id, a.Email, a.PassHash, a.Name, a.Role, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "accounts_email_key") {
			return internal_errors.Conflict("Email already registered")
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}
