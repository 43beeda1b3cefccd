package domain

import "time"

// Role is the marketplace role flag carried in identity tokens.
type Role string

const (
	RoleStandard Role = "standard"
	RoleSeller   Role = "seller"
)

// RoleFor maps the seller flag stored on a user to a token role.
func RoleFor(isSeller bool) Role {
	if isSeller {
		return RoleSeller
	}
	return RoleStandard
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleSeller
}

// User is a marketplace account. Buyers and sellers share the same table.
type User struct {
	ID           string
	Username     string
	Email        string
	Phone        *string
	PasswordHash string
	Country      string
	Description  string
	IsSeller     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role returns the token role for the user.
func (u *User) Role() Role {
	return RoleFor(u.IsSeller)
}
