package models

// Role is the privilege level of a user account.
type Role string

const (
	RoleUser          Role = "USER"
	RoleWardMember    Role = "WARD_MEMBER"
	RoleWardSecretary Role = "WARD_SECRETARY"
	RoleAdmin         Role = "ADMIN"
	RoleSuperAdmin    Role = "SUPER_ADMIN"
)

// roleLevels orders the hierarchy. Every permission check goes through
// AtLeast so the ordering lives in exactly one place.
var roleLevels = map[Role]int{
	RoleUser:          0,
	RoleWardMember:    1,
	RoleWardSecretary: 2,
	RoleAdmin:         3,
	RoleSuperAdmin:    4,
}

// AllRoles lists every valid role.
var AllRoles = []Role{
	RoleUser,
	RoleWardMember,
	RoleWardSecretary,
	RoleAdmin,
	RoleSuperAdmin,
}

// RegistrableRoles are the roles a self-service registration may request.
// Admin roles are only granted by a super admin.
var RegistrableRoles = []Role{
	RoleUser,
	RoleWardMember,
	RoleWardSecretary,
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the position of r in the hierarchy. Unknown roles rank
// below every valid role.
func (r Role) Level() int {
	if level, ok := roleLevels[r]; ok {
		return level
	}
	return -1
}

// AtLeast reports whether r grants at least the privilege of min.
func (r Role) AtLeast(min Role) bool {
	return r.Level() >= min.Level() && r.IsValid()
}

// IsAdmin reports whether r is an administrative role.
func (r Role) IsAdmin() bool {
	return r.AtLeast(RoleAdmin)
}

// IsRegistrable reports whether a self-service registration may request r.
func (r Role) IsRegistrable() bool {
	for _, candidate := range RegistrableRoles {
		if r == candidate {
			return true
		}
	}
	return false
}
