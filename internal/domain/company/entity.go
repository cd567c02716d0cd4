package company

import "time"

const (
	DefaultWorkDays     = 5
	DefaultVacationDays = 30
	DefaultPlan         = "free"
)

type Company struct {
	ID              string
	Name            string
	AccessCode      string
	Plan            string
	WorkDays        int
	VacationDays    int
	ExcludeWeekends bool
	CreatedAt       time.Time
}

// Policy is the per-tenant configuration read when counting requested days.
type Policy struct {
	ExcludeWeekends bool
	WorkDays        int
}

func (c Company) Policy() Policy {
	return Policy{ExcludeWeekends: c.ExcludeWeekends, WorkDays: c.WorkDays}
}
