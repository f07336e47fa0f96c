package model

// UserRole represents the role of a user in the system.
type UserRole string

const (
	// RoleStaff is a standard authenticated user.
	RoleStaff UserRole = "staff"
	// RoleAdmin has elevated permissions for user administration.
	RoleAdmin UserRole = "admin"
)

// User represents the identity of the logged-in account as reported by
// the backend on login.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}
