package user

import "context"

// Actor identifies the authenticated caller of a tenant-scoped operation.
type Actor struct {
	UserID    string
	CompanyID string
	Role      Role
}

type UserService interface {
	List(ctx context.Context, actor Actor) ([]UserResponse, error)
	Get(ctx context.Context, actor Actor, id string) (UserResponse, error)
	AdjustVacationDays(ctx context.Context, actor Actor, req AdjustVacationDaysRequest) (UserResponse, error)
	UpdateRole(ctx context.Context, actor Actor, req UpdateUserRoleRequest) (UserResponse, error)
	ToggleActive(ctx context.Context, actor Actor, id string) (ToggleActiveResponse, error)
}
