package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Satisfies reports whether a holder of r can use endpoints gated on required.
// Superadmin can do everything an admin can.
func (r Role) Satisfies(required Role) bool {
	if r == required {
		return true
	}
	return r == RoleSuperadmin && required == RoleAdmin
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Account is a privileged principal allowed to mutate content.
// PassHash never leaves the server.
type Account struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	PassHash  string    `json:"-"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Claims is the verified identity payload carried by a session token.
// Issued at login, read-only afterwards.
type Claims struct {
	AccountId uuid.UUID `json:"accountId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Credentials struct {
	Email    string
	Password string
}
