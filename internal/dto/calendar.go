package dto

// WorkingDaysRequest query parameters of GET /working-days
type WorkingDaysRequest struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end"   binding:"required"`
}

// WorkingDaysResponse weekdays in [start, end] minus holidays
type WorkingDaysResponse struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	WorkingDays int    `json:"working_days"`
}
