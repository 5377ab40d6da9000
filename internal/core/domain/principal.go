package domain

import "time"

// Role is the closed set of roles a principal may hold.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Principal models a registered identity.
type Principal struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity returns the public claims of p.
func (p *Principal) Identity() Identity {
	return Identity{PrincipalID: p.ID, Username: p.Username, Role: p.Role}
}

// Identity is the public subset of a principal carried inside session tokens.
type Identity struct {
	PrincipalID string `json:"id"`
	Username    string `json:"username"`
	Role        Role   `json:"role"`
}

// Claims is what a verified session token yields.
type Claims struct {
	Identity
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
