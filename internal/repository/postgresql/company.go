package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const companyColumns = `id, name, access_code, plan, work_days, vacation_days, exclude_weekends, created_at`

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GenerateAccessCode returns a join code of the form VC-XXXXXXXXX.
func GenerateAccessCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "VC-" + strings.ToUpper(raw[:9])
}

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.AccessCode,
		&c.Plan,
		&c.WorkDays,
		&c.VacationDays,
		&c.ExcludeWeekends,
		&c.CreatedAt,
	)
	return c, err
}

// Create implements company.CompanyRepository. An empty access code is generated.
func (r *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	if newCompany.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return company.Company{}, fmt.Errorf("generate company id: %w", err)
		}
		newCompany.ID = id.String()
	}
	if newCompany.AccessCode == "" {
		newCompany.AccessCode = GenerateAccessCode()
	}
	if newCompany.Plan == "" {
		newCompany.Plan = company.DefaultPlan
	}
	if newCompany.WorkDays == 0 {
		newCompany.WorkDays = company.DefaultWorkDays
	}

	query := `
		INSERT INTO companies (id, name, access_code, plan, work_days, vacation_days, exclude_weekends)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + companyColumns

	created, err := scanCompany(q.QueryRow(ctx, query,
		newCompany.ID,
		newCompany.Name,
		newCompany.AccessCode,
		newCompany.Plan,
		newCompany.WorkDays,
		newCompany.VacationDays,
		newCompany.ExcludeWeekends,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return company.Company{}, company.ErrAccessCodeExists
		}
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCompany(q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

// GetByAccessCode implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByAccessCode(ctx context.Context, accessCode string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCompany(q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE access_code = $1`, accessCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrInvalidAccessCode
		}
		return company.Company{}, fmt.Errorf("failed to get company by access code: %w", err)
	}
	return c, nil
}

// Update implements company.CompanyRepository.
func (r *companyRepositoryImpl) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET name = $1, work_days = $2, vacation_days = $3, plan = $4, exclude_weekends = $5
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		req.Name,
		req.WorkDays,
		req.VacationDays,
		req.Plan,
		req.ExcludeWeekendsOrDefault(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

// GetPolicy implements company.PolicySource.
func (r *companyRepositoryImpl) GetPolicy(ctx context.Context, companyID string) (company.Policy, error) {
	q := GetQuerier(ctx, r.db)

	var p company.Policy
	err := q.QueryRow(ctx,
		`SELECT exclude_weekends, work_days FROM companies WHERE id = $1`,
		companyID,
	).Scan(&p.ExcludeWeekends, &p.WorkDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Policy{}, company.ErrCompanyNotFound
		}
		return company.Policy{}, fmt.Errorf("failed to get company policy: %w", err)
	}
	return p, nil
}
