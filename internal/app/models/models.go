package models

// Role defines the account role type
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// ProtectedAdminUsername is the bootstrap administrator account. It is seeded
// at first run and can never be deleted.
const ProtectedAdminUsername = "admin"
