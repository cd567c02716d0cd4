package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leaveRequestSelect = `
		SELECT vr.id, vr.company_id, vr.user_id,
			   vr.start_date, vr.end_date, vr.days_count,
			   vr.status, vr.manager_id, vr.note,
			   vr.created_at, vr.updated_at,
			   u.name, u.email, m.name
		FROM vacation_requests vr
		JOIN users u ON vr.user_id = u.id
		LEFT JOIN users m ON vr.manager_id = m.id
`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	var startDate, endDate time.Time
	var status string

	err := row.Scan(
		&req.ID, &req.CompanyID, &req.UserID,
		&startDate, &endDate, &req.DaysCount,
		&status, &req.ManagerID, &req.Note,
		&req.CreatedAt, &req.UpdatedAt,
		&req.UserName, &req.UserEmail, &req.ManagerName,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	req.StartDate = leave.DateOf(startDate)
	req.EndDate = leave.DateOf(endDate)
	req.Status = leave.LeaveRequestStatus(status)
	return req, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacation request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vacation requests: %w", err)
	}
	return requests, nil
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if request.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("generate request id: %w", err)
		}
		request.ID = id.String()
	}

	query := `
		INSERT INTO vacation_requests (
			id, company_id, user_id,
			start_date, end_date, days_count,
			status, note, created_at, updated_at
		) VALUES (
			$1, $2, $3,
			$4, $5, $6,
			$7, $8, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.CompanyID, request.UserID,
		request.StartDate.Time(), request.EndDate.Time(), request.DaysCount,
		string(request.Status), request.Note,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create vacation request: %w", err)
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	req, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE vr.id = $1 AND vr.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, &leave.NotFoundError{Resource: "vacation request", ID: id}
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get vacation request: %w", err)
	}
	return req, nil
}

func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, companyID, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + ` WHERE vr.id = $1 AND vr.company_id = $2 FOR UPDATE OF vr`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, &leave.NotFoundError{Resource: "vacation request", ID: id}
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to lock vacation request: %w", err)
	}
	return req, nil
}

func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, companyID, id string, from, to leave.LeaveRequestStatus, managerID *string, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vacation_requests
		SET status = $1, manager_id = $2, updated_at = $3
		WHERE id = $4 AND company_id = $5 AND status = $6
	`

	tag, err := q.Exec(ctx, query, string(to), managerID, at, id, companyID, string(from))
	if err != nil {
		return false, fmt.Errorf("failed to update vacation request status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, companyID string, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE vr.company_id = $1"
	args := []interface{}{companyID}
	argIndex := 2

	if filter.UserID != nil {
		whereClause += fmt.Sprintf(" AND vr.user_id = $%d", argIndex)
		args = append(args, *filter.UserID)
		argIndex++
	}

	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND vr.status = $%d", argIndex)
		args = append(args, string(*filter.Status))
		argIndex++
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM vacation_requests vr %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vacation requests: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`%s
		%s
		ORDER BY vr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestSelect, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vacation requests: %w", err)
	}

	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *leaveRequestRepositoryImpl) ListOverlapping(ctx context.Context, companyID string, from, to leave.Date, statuses []leave.LeaveRequestStatus) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	statusNames := make([]string, len(statuses))
	for i, s := range statuses {
		statusNames[i] = string(s)
	}

	query := leaveRequestSelect + `
		WHERE vr.company_id = $1
		  AND vr.start_date <= $3 AND vr.end_date >= $2
		  AND vr.status = ANY($4)
		ORDER BY vr.start_date ASC, u.name ASC
	`

	rows, err := q.Query(ctx, query, companyID, from.Time(), to.Time(), statusNames)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping vacation requests: %w", err)
	}
	return collectLeaveRequests(rows)
}
