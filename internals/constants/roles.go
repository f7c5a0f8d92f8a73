package constants

import "fmt"

// Role error message templates
const (
	ErrOnlyAdminsCanAccess   = "❌ Only admins may access %s."
	ErrOnlyManagersCanAccess = "❌ Only managers or admins may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagersCanAccess, feature)
}

// ==========================
// ✅ Roles
// ==========================
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

var (
	AllRoles    = []string{RoleUser, RoleManager, RoleAdmin}
	StaffRoles  = []string{RoleManager, RoleAdmin}
	AdminOnly   = []string{RoleAdmin}
	ValidShifts = []int{1, 2}
)
