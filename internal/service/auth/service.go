package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	company.CompanyRepository
	jwt.Service
}

func NewAuthService(tx database.Transactor, userRepository user.UserRepository, companyRepository company.CompanyRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		tx:                tx,
		UserRepository:    userRepository,
		CompanyRepository: companyRepository,
		Service:           jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (a *AuthServiceImpl) issueToken(u user.User) (auth.TokenResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(u.ID, u.Email, u.CompanyID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresAt: expiresAt,
		User:                 user.ToResponse(u),
	}, nil
}

// RegisterAdmin implements auth.AuthService. It creates the company and its first
// administrator in one transaction.
func (a *AuthServiceImpl) RegisterAdmin(ctx context.Context, req auth.RegisterAdminRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	passwordHash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var newCompany company.Company
	var admin user.User
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		exists, err := a.UserRepository.ExistsByEmail(txCtx, req.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return auth.ErrEmailExists
		}

		newCompany, err = a.CompanyRepository.Create(txCtx, company.Company{
			Name:            strings.TrimSpace(req.CompanyName),
			Plan:            company.DefaultPlan,
			WorkDays:        company.DefaultWorkDays,
			VacationDays:    company.DefaultVacationDays,
			ExcludeWeekends: true,
		})
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		admin, err = a.UserRepository.Create(txCtx, user.User{
			CompanyID:    newCompany.ID,
			Name:         strings.TrimSpace(req.Name),
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			PasswordHash: passwordHash,
			Role:         user.RoleAdmin,
			Active:       true,
		})
		if err != nil {
			if errors.Is(err, user.ErrUserEmailExists) {
				return auth.ErrEmailExists
			}
			return fmt.Errorf("failed to create admin: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("company registered", "company_id", newCompany.ID, "admin_id", admin.ID)

	resp, err := a.issueToken(admin)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	resp.Company = &auth.CompanyInfo{Name: newCompany.Name, AccessCode: newCompany.AccessCode}
	return resp, nil
}

// Register implements auth.AuthService. New members start with the company's
// default vacation allotment.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	companyData, err := a.CompanyRepository.GetByAccessCode(ctx, strings.ToUpper(strings.TrimSpace(req.AccessCode)))
	if err != nil {
		if errors.Is(err, company.ErrInvalidAccessCode) || errors.Is(err, company.ErrCompanyNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidAccessCode
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get company by access code: %w", err)
	}

	exists, err := a.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, auth.ErrEmailExists
	}

	passwordHash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	member, err := a.UserRepository.Create(ctx, user.User{
		CompanyID:         companyData.ID,
		Name:              strings.TrimSpace(req.Name),
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:      passwordHash,
		Role:              req.RoleOrDefault(),
		VacationDaysTotal: companyData.VacationDays,
		Active:            true,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return auth.TokenResponse{}, auth.ErrEmailExists
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "company_id", companyData.ID, "user_id", member.ID, "role", member.Role)

	return a.issueToken(member)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.Active {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	return a.issueToken(userData)
}
