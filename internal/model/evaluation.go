package model

import (
	"time"

	"gorm.io/datatypes"
)

// CriteriaCount number of criteria in a self-evaluation
const CriteriaCount = 10

// MaxCriterionScore highest score of one criterion
const MaxCriterionScore = 4

// Criteria labels of the ten evaluated criteria, in score order
var Criteria = [CriteriaCount]string{
	"Ponctualité et présentation",
	"Hygiène et asepsie",
	"Accueil et prise en charge du patient",
	"Installation et positionnement",
	"Maîtrise technique de l'appareillage",
	"Radioprotection",
	"Communication avec l'équipe",
	"Initiative et curiosité",
	"Connaissances théoriques",
	"Autonomie",
}

// Evaluation self-evaluation, table evaluations; immutable once stored
type Evaluation struct {
	EvaluationID uint                     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	StageID      uint                     `gorm:"not null;index"                     json:"stage_id"`
	Date         time.Time                `gorm:"type:date;not null"                 json:"date"`
	Scores       datatypes.JSONSlice[int] `gorm:"not null"                          json:"scores"`
	TotalScore   int                      `gorm:"not null"                           json:"total_score"`
	BaseModel
}

// TableName table name
func (Evaluation) TableName() string { return "evaluations" }

// SumScores adds the criterion scores
func SumScores(scores []int) int {
	total := 0
	for _, s := range scores {
		total += s
	}
	return total
}
