package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, companyID, id string) (User, error)
	// GetByIDForUpdate locks the user row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, companyID, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByCompany(ctx context.Context, companyID string) ([]User, error)
	ListIDsByRoles(ctx context.Context, companyID string, roles ...Role) ([]string, error)
	AddVacationDaysUsed(ctx context.Context, companyID, id string, days int) error
	UpdateVacationDaysTotal(ctx context.Context, companyID, id string, total int) error
	UpdateRole(ctx context.Context, companyID, id string, role Role) error
	ToggleActive(ctx context.Context, companyID, id string) (bool, error)
}
