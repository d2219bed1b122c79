package models

const (
	RoleUser     = "user"
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Identity is the authenticated caller as asserted by the bearer token.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	BranchID int64  `json:"branch_id,omitempty"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the identity belongs to bank staff.
func (i Identity) IsStaff() bool {
	return i.Role == RoleEmployee || i.Role == RoleAdmin
}
