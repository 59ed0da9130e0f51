package domain

import "time"

// Role determines which operations an actor may attempt.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleOwner    Role = "OWNER"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleOwner || r == RoleAdmin
}

// User models a stored account.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email,omitempty" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Identity is the minimal view of an actor used for authorization decisions.
// It is derived from token claims rather than a database lookup, so the same
// type serves the server middleware and the client-side session.
type Identity struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
}

// Identity projects a stored user onto its authorization view.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Role: u.Role, Username: u.Username}
}
