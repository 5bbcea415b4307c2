package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
)

// EvaluationRepository self-evaluation data access (append only)
type EvaluationRepository interface {
	Create(ctx context.Context, eval *model.Evaluation) error
	List(ctx context.Context, stageID uint) ([]model.Evaluation, error)
}

type evaluationRepo struct {
	db *gorm.DB
}

// NewEvaluationRepo creates an EvaluationRepository
func NewEvaluationRepo(db *gorm.DB) EvaluationRepository {
	return &evaluationRepo{db: db}
}

func (r *evaluationRepo) Create(ctx context.Context, eval *model.Evaluation) error {
	return r.db.WithContext(ctx).Create(eval).Error
}

// List returns evaluations newest first; stageID 0 means every placement
func (r *evaluationRepo) List(ctx context.Context, stageID uint) ([]model.Evaluation, error) {
	var evals []model.Evaluation
	db := r.db.WithContext(ctx)

	if stageID != 0 {
		db = db.Where("stage_id = ?", stageID)
	}

	err := db.Order("date DESC, id DESC").Find(&evals).Error
	return evals, err
}
