package leave

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/validator"
)

const (
	// MaxRangeDays bounds the calendar span of a single request.
	MaxRangeDays = 2 * 366
	MaxPage      = 10000
)

type SubmitRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Note      *string `json:"note,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	end, endOK := validator.IsValidDate(r.EndDate)

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	} else if startOK && end.Sub(start) >= MaxRangeDays*24*time.Hour {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: fmt.Sprintf("a request may span at most %d days", MaxRangeDays),
		})
	}

	if r.Note != nil && len(*r.Note) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideRequest struct {
	RequestID string `json:"-"`
	Status    string `json:"status"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if _, err := ParseDecision(r.Status); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be approved or denied",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestFilter struct {
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// Validate also fills in paging defaults.
func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Page > MaxPage {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: fmt.Sprintf("page must not exceed %d", MaxPage),
		})
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}
	if f.Status != nil {
		if _, err := ParseStatus(*f.Status); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of pending, approved, denied, cancelled",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CalendarFilter struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (f *CalendarFilter) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(f.From)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(f.To)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	UserName    string             `json:"user_name,omitempty"`
	UserEmail   string             `json:"user_email,omitempty"`
	StartDate   Date               `json:"start_date"`
	EndDate     Date               `json:"end_date"`
	DaysCount   int                `json:"days_count"`
	Status      LeaveRequestStatus `json:"status"`
	Note        *string            `json:"note,omitempty"`
	ManagerID   *string            `json:"manager_id,omitempty"`
	ManagerName *string            `json:"manager_name,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func ToResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		UserName:    r.UserName,
		UserEmail:   r.UserEmail,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		DaysCount:   r.DaysCount,
		Status:      r.Status,
		Note:        r.Note,
		ManagerID:   r.ManagerID,
		ManagerName: r.ManagerName,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Showing    string                 `json:"showing"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

type BalanceResponse struct {
	Total           int  `json:"vacation_days_total"`
	Used            int  `json:"vacation_days_used"`
	Available       int  `json:"vacation_days_available"`
	ExcludeWeekends bool `json:"exclude_weekends"`
}
