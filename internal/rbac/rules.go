package rbac

// Default policy: administrators can do everything, students only what the
// student views need.
var RolePermissions = map[string][]string{
	"student": {
		"exam:list",
		"attempt:start",
		"attempt:submit",
		"account:update",
		"account:change_password",
	},
	"admin": {
		"*",
	},
}
