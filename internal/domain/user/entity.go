package user

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Company administrator, holds no vacation days
	RoleManager  Role = "manager"  // Can approve or deny leave
	RoleEmployee Role = "employee" // Regular employee
)

// ParseRole converts a raw role string into the closed Role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

type User struct {
	ID                string
	CompanyID         string
	Name              string
	Email             string
	PasswordHash      string
	Role              Role
	VacationDaysTotal int
	VacationDaysUsed  int
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HoldsVacationDays reports whether the user takes part in day accounting.
func (u *User) HoldsVacationDays() bool {
	switch u.Role {
	case RoleManager, RoleEmployee:
		return true
	case RoleAdmin:
		return false
	}
	return false
}

// AvailableDays may be negative when an administrator set the total below used.
func (u *User) AvailableDays() int {
	return u.VacationDaysTotal - u.VacationDaysUsed
}
