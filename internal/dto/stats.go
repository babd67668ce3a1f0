package dto

// KindStats are the daily numbers for one record kind.
type KindStats struct {
	TotalToday        int64 `json:"total_today"`
	ExitedToday       int64 `json:"exited_today"`
	PendingApproval   int64 `json:"pending_approval"`
	ApprovedNotExited int64 `json:"approved_not_exited"`
	// CurrentlyInside counts every record not yet exited, regardless of
	// entry date.
	CurrentlyInside int64 `json:"currently_inside"`
}

// DailyStatsResponse is the payload of GET /stats/today.
type DailyStatsResponse struct {
	Visitors KindStats `json:"visitors"`
	Students KindStats `json:"students"`
}
