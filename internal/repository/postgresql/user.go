package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, company_id, name, email, password_hash, role,
		vacation_days_total, vacation_days_used, active, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var role string
	err := row.Scan(
		&u.ID,
		&u.CompanyID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&role,
		&u.VacationDaysTotal,
		&u.VacationDaysUsed,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	if newUser.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return user.User{}, fmt.Errorf("generate user id: %w", err)
		}
		newUser.ID = id.String()
	}

	query := `
		INSERT INTO users (id, company_id, name, email, password_hash, role,
			vacation_days_total, vacation_days_used, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.ID,
		newUser.CompanyID,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		string(newUser.Role),
		newUser.VacationDaysTotal,
		newUser.VacationDaysUsed,
		newUser.Active,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND company_id = $2`

	u, err := scanUser(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetByIDForUpdate implements user.UserRepository.
func (r *userRepositoryImpl) GetByIDForUpdate(ctx context.Context, companyID, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND company_id = $2 FOR UPDATE`

	u, err := scanUser(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to lock user: %w", err)
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// ListByCompany implements user.UserRepository.
func (r *userRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 ORDER BY name ASC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// ListIDsByRoles implements user.UserRepository.
func (r *userRepositoryImpl) ListIDsByRoles(ctx context.Context, companyID string, roles ...user.Role) ([]string, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	roleNames := make([]string, len(roles))
	for i, role := range roles {
		roleNames[i] = string(role)
	}

	rows, err := q.Query(ctx,
		`SELECT id FROM users WHERE company_id = $1 AND role = ANY($2) AND active = true`,
		companyID, roleNames,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect user ids: %w", err)
	}
	return ids, nil
}

// AddVacationDaysUsed implements user.UserRepository. The update only applies while the
// user still has enough days, so concurrent approvals can never push used above total.
func (r *userRepositoryImpl) AddVacationDaysUsed(ctx context.Context, companyID, id string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET vacation_days_used = vacation_days_used + $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
		  AND vacation_days_used + $1 <= vacation_days_total
	`

	tag, err := q.Exec(ctx, query, days, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update vacation days used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrInsufficientVacationDays
	}
	return nil
}

// UpdateVacationDaysTotal implements user.UserRepository.
func (r *userRepositoryImpl) UpdateVacationDaysTotal(ctx context.Context, companyID, id string, total int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE users SET vacation_days_total = $1, updated_at = NOW() WHERE id = $2 AND company_id = $3`,
		total, id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vacation days total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateRole implements user.UserRepository.
func (r *userRepositoryImpl) UpdateRole(ctx context.Context, companyID, id string, role user.Role) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2 AND company_id = $3`,
		string(role), id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// ToggleActive implements user.UserRepository and returns the new state.
func (r *userRepositoryImpl) ToggleActive(ctx context.Context, companyID, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var active bool
	err := q.QueryRow(ctx,
		`UPDATE users SET active = NOT active, updated_at = NOW()
		 WHERE id = $1 AND company_id = $2
		 RETURNING active`,
		id, companyID,
	).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, user.ErrUserNotFound
		}
		return false, fmt.Errorf("failed to toggle active: %w", err)
	}
	return active, nil
}
