package dto

// ── Stage DTOs ──

// CreateStageRequest create a placement
type CreateStageRequest struct {
	Name       string `json:"name"        binding:"required,max=200"`
	Modality   string `json:"modality"    binding:"required"`
	Emoji      string `json:"emoji"       binding:"omitempty,max=16"`
	Location   string `json:"location"    binding:"omitempty,max=200"`
	Supervisor string `json:"supervisor"  binding:"omitempty,max=120"`
	Manager    string `json:"manager"     binding:"omitempty,max=120"`
	StartDate  string `json:"start_date"  binding:"required"`
	EndDate    string `json:"end_date"    binding:"required"`
}

// UpdateStageRequest partial update; nil fields are left untouched
type UpdateStageRequest struct {
	Name       *string `json:"name"       binding:"omitempty,max=200"`
	Modality   *string `json:"modality"`
	Emoji      *string `json:"emoji"      binding:"omitempty,max=16"`
	Location   *string `json:"location"   binding:"omitempty,max=200"`
	Supervisor *string `json:"supervisor" binding:"omitempty,max=120"`
	Manager    *string `json:"manager"    binding:"omitempty,max=120"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
}

// StageListRequest query parameters of GET /stages
type StageListRequest struct {
	Modality string `form:"modality"`
}

// StageMatchRequest query parameters of GET /stages/match
type StageMatchRequest struct {
	Date string `form:"date" binding:"required"`
}

// StageResponse placement as returned by the API
type StageResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Modality      string `json:"modality"`
	ModalityLabel string `json:"modality_label"`
	Emoji         string `json:"emoji"`
	Location      string `json:"location,omitempty"`
	Supervisor    string `json:"supervisor,omitempty"`
	Manager       string `json:"manager,omitempty"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	WorkingDays   int    `json:"working_days"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// StageMatchResponse result of the date auto-detection
type StageMatchResponse struct {
	Found bool           `json:"found"`
	Stage *StageResponse `json:"stage,omitempty"`
}
