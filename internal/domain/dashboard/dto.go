package dashboard

// StatsResponse summarises a company for managers and admins.
type StatsResponse struct {
	TotalEmployees    int64 `json:"total_employees"`
	PendingRequests   int64 `json:"pending_requests"`
	ApprovedThisMonth int64 `json:"approved_this_month"`
}
