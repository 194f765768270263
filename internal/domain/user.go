package domain

import "github.com/cockroachdb/errors"

// Role is the permission level of a dashboard user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// NewRole converts s to a Role.
func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", errors.Mark(errors.Newf("invalid role %q", s), ErrValidation)
	}
	return r, nil
}

// Identity is the non-secret profile of an authenticated user. It is what
// the session holds and what gets persisted under currentUser.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// User is a roster entry: an Identity plus its plaintext password.
// The password is never serialized.
type User struct {
	Identity
	Password string `json:"-"`
}
