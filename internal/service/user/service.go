package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/validator"
)

type UserServiceImpl struct {
	user.UserRepository
	ledger leave.BalanceLedger
}

func NewUserService(userRepository user.UserRepository, ledger leave.BalanceLedger) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		ledger:         ledger,
	}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, actor user.Actor) ([]user.UserResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionUserViewAll) {
		return nil, user.ErrManagerAccessRequired
	}

	users, err := s.UserRepository.ListByCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, nil
}

// Get implements user.UserService. Employees may only read themselves.
func (s *UserServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (user.UserResponse, error) {
	if id != actor.UserID && !user.HasPermission(actor.Role, user.PermissionUserViewAll) {
		return user.UserResponse{}, user.ErrManagerAccessRequired
	}
	if !validator.IsValidUUID(id) {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	u, err := s.UserRepository.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// AdjustVacationDays implements user.UserService. The new total may be lower
// than the days already used.
func (s *UserServiceImpl) AdjustVacationDays(ctx context.Context, actor user.Actor, req user.AdjustVacationDaysRequest) (user.UserResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionUserAdjustDays) {
		return user.UserResponse{}, user.ErrManagerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if !validator.IsValidUUID(req.UserID) {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	if err := s.ledger.AdjustTotal(ctx, actor.CompanyID, req.UserID, *req.VacationDaysTotal); err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("vacation days adjusted",
		"company_id", actor.CompanyID,
		"user_id", req.UserID,
		"total", *req.VacationDaysTotal,
		"by", actor.UserID,
	)

	return s.Get(ctx, actor, req.UserID)
}

// UpdateRole implements user.UserService.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, actor user.Actor, req user.UpdateUserRoleRequest) (user.UserResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionUserManageRoles) {
		return user.UserResponse{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if req.UserID == actor.UserID {
		return user.UserResponse{}, user.ErrCannotModifySelf
	}
	if !validator.IsValidUUID(req.UserID) {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		return user.UserResponse{}, err
	}

	if err := s.UserRepository.UpdateRole(ctx, actor.CompanyID, req.UserID, role); err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user role changed", "company_id", actor.CompanyID, "user_id", req.UserID, "role", role, "by", actor.UserID)

	return s.Get(ctx, actor, req.UserID)
}

// ToggleActive implements user.UserService.
func (s *UserServiceImpl) ToggleActive(ctx context.Context, actor user.Actor, id string) (user.ToggleActiveResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionUserToggleActive) {
		return user.ToggleActiveResponse{}, user.ErrAdminAccessRequired
	}
	if id == actor.UserID {
		return user.ToggleActiveResponse{}, user.ErrCannotModifySelf
	}
	if !validator.IsValidUUID(id) {
		return user.ToggleActiveResponse{}, user.ErrUserNotFound
	}

	active, err := s.UserRepository.ToggleActive(ctx, actor.CompanyID, id)
	if err != nil {
		return user.ToggleActiveResponse{}, err
	}

	slog.Info("user active flag toggled", "company_id", actor.CompanyID, "user_id", id, "active", active, "by", actor.UserID)

	return user.ToggleActiveResponse{ID: id, Active: active}, nil
}
