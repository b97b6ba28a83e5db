package entity

// Permission is a named capability granted through role membership.
type Permission string

const (
	PermissionManageUsers   Permission = "manage_users"
	PermissionModerateUsers Permission = "moderate_users"
	PermissionEditContent   Permission = "edit_content"
	PermissionViewContent   Permission = "view_content"
)

var rolePermissions = map[RoleID][]Permission{
	RoleAdmin: {
		PermissionManageUsers,
		PermissionModerateUsers,
		PermissionEditContent,
		PermissionViewContent,
	},
	RoleEditor: {
		PermissionEditContent,
		PermissionViewContent,
	},
	RoleUser: {
		PermissionViewContent,
	},
}

// PermissionChecker decides whether a user holds a capability.
type PermissionChecker interface {
	Check(user *User, permission Permission) bool
}

// RolePermissionChecker composes capabilities from the user's role set.
// Inactive users hold no permissions at all.
type RolePermissionChecker struct{}

func (RolePermissionChecker) Check(user *User, permission Permission) bool {
	if user == nil || !user.IsActive {
		return false
	}
	for _, role := range user.Roles {
		for _, granted := range rolePermissions[role.ID] {
			if granted == permission {
				return true
			}
		}
	}
	return false
}
