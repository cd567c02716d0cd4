package user

type Permission string

const (
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	PermissionUserViewAll      Permission = "user.view_all"
	PermissionUserAdjustDays   Permission = "user.adjust_days"
	PermissionUserManageRoles  Permission = "user.manage_roles"
	PermissionUserToggleActive Permission = "user.toggle_active"

	PermissionCompanyView   Permission = "company.view"
	PermissionCompanyManage Permission = "company.manage"

	PermissionStatsView Permission = "stats.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admins run the company but never request leave
		PermissionLeaveViewOwn,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionUserViewAll,
		PermissionUserAdjustDays,
		PermissionUserManageRoles,
		PermissionUserToggleActive,
		PermissionCompanyView,
		PermissionCompanyManage,
		PermissionStatsView,
	},
	RoleManager: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionUserViewAll,
		PermissionUserAdjustDays,
		PermissionCompanyView,
		PermissionStatsView,
	},
	RoleEmployee: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionCompanyView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
