package models

// Role is an access level granted to a user.
type Role string

const (
	// RoleUser is assigned to every account on sign up.
	RoleUser Role = "USER"
	// RoleAdmin grants access to the /admin/api routes.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
