package dto

// ── Statistics DTOs ──

// MoodStatResponse one mood bucket
type MoodStatResponse struct {
	Mood       string `json:"mood"`
	Label      string `json:"label"`
	Emoji      string `json:"emoji"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// MoodBreakdownResponse moods in fixed severity order
type MoodBreakdownResponse struct {
	Total int                `json:"total"`
	Moods []MoodStatResponse `json:"moods"`
}

// StageStatsResponse statistics of one placement
type StageStatsResponse struct {
	Stage      StageResponse         `json:"stage"`
	Moods      MoodBreakdownResponse `json:"moods"`
	TotalDays  int                   `json:"total_days"`
	LoggedDays int                   `json:"logged_days"`
}

// StatsResponse GET /stats
type StatsResponse struct {
	Global MoodBreakdownResponse `json:"global"`
	Stages []StageStatsResponse  `json:"stages"`
}
