package dto

// ── Evaluation DTOs ──

// CreateEvaluationRequest self-evaluation; scores are pointers so a missing
// criterion (null) is told apart from a zero score
type CreateEvaluationRequest struct {
	StageID    uint   `json:"stage_id" binding:"required"`
	Date       string `json:"date"     binding:"required"`
	Scores     []*int `json:"scores"`
	TotalScore *int   `json:"total_score"`
}

// EvaluationListRequest query parameters of GET /evaluations
type EvaluationListRequest struct {
	StageID uint `form:"stage_id"`
}

// CriterionScore one scored criterion
type CriterionScore struct {
	Criterion string `json:"criterion"`
	Score     int    `json:"score"`
}

// EvaluationResponse stored self-evaluation
type EvaluationResponse struct {
	ID         uint             `json:"id"`
	StageID    uint             `json:"stage_id"`
	Date       string           `json:"date"`
	Scores     []int            `json:"scores"`
	Criteria   []CriterionScore `json:"criteria"`
	TotalScore int              `json:"total_score"`
	MaxScore   int              `json:"max_score"`
	CreatedAt  string           `json:"created_at"`
}
