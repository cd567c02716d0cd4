package postgresql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/database"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id               UUID PRIMARY KEY,
		name             VARCHAR(255) NOT NULL,
		access_code      VARCHAR(32) UNIQUE NOT NULL,
		plan             VARCHAR(50) NOT NULL DEFAULT 'free',
		work_days        INTEGER NOT NULL DEFAULT 5 CHECK (work_days BETWEEN 1 AND 7),
		vacation_days    INTEGER NOT NULL DEFAULT 30 CHECK (vacation_days >= 0),
		exclude_weekends BOOLEAN NOT NULL DEFAULT true,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id                  UUID PRIMARY KEY,
		company_id          UUID NOT NULL REFERENCES companies(id),
		name                VARCHAR(255) NOT NULL,
		email               VARCHAR(255) UNIQUE NOT NULL,
		password_hash       VARCHAR(255) NOT NULL,
		role                VARCHAR(50) NOT NULL CHECK (role IN ('admin', 'manager', 'employee')),
		vacation_days_total INTEGER NOT NULL DEFAULT 30,
		vacation_days_used  INTEGER NOT NULL DEFAULT 0 CHECK (vacation_days_used >= 0),
		active              BOOLEAN NOT NULL DEFAULT true,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_company ON users (company_id)`,
	`CREATE TABLE IF NOT EXISTS vacation_requests (
		id         UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id),
		user_id    UUID NOT NULL REFERENCES users(id),
		start_date DATE NOT NULL,
		end_date   DATE NOT NULL,
		days_count INTEGER NOT NULL CHECK (days_count >= 0),
		status     VARCHAR(50) NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'approved', 'denied', 'cancelled')),
		note       TEXT,
		manager_id UUID REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (end_date >= start_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vacation_requests_company_status ON vacation_requests (company_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_vacation_requests_user ON vacation_requests (user_id)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id           UUID PRIMARY KEY,
		company_id   UUID NOT NULL REFERENCES companies(id),
		recipient_id UUID NOT NULL REFERENCES users(id),
		type         VARCHAR(50) NOT NULL,
		message      TEXT NOT NULL,
		is_read      BOOLEAN NOT NULL DEFAULT false,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_recipient_unread ON notifications (recipient_id) WHERE is_read = false`,
}

// EnsureSchema creates the tables the service needs when they are missing.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	slog.Info("database schema ready", "statements", len(schemaStatements))
	return nil
}
