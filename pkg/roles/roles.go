package roles

// Role is the permission level carried in the JWT.
type Role string

const (
	User       Role = "user"
	Admin      Role = "admin"
	SuperAdmin Role = "superadmin"
)

type HierarchyLevel int

const (
	UserLevel       HierarchyLevel = 1
	AdminLevel      HierarchyLevel = 2
	SuperAdminLevel HierarchyLevel = 3
)

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case User:
		return UserLevel
	case Admin:
		return AdminLevel
	case SuperAdmin:
		return SuperAdminLevel
	default:
		return UserLevel
	}
}

// HasPermission reports whether the role covers the required role.
func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

func (r Role) IsValid() bool {
	switch r {
	case User, Admin, SuperAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
