package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
)

// StageRepository placement data access
type StageRepository interface {
	Create(ctx context.Context, stage *model.Stage) error
	GetByID(ctx context.Context, id uint) (*model.Stage, error)
	List(ctx context.Context, modality model.Modality) ([]model.Stage, error)
	Update(ctx context.Context, stage *model.Stage) error
	// Delete removes the placement together with its notes and evaluations
	Delete(ctx context.Context, id uint) error
}

type stageRepo struct {
	db *gorm.DB
}

// NewStageRepo creates a StageRepository
func NewStageRepo(db *gorm.DB) StageRepository {
	return &stageRepo{db: db}
}

func (r *stageRepo) Create(ctx context.Context, stage *model.Stage) error {
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *stageRepo) GetByID(ctx context.Context, id uint) (*model.Stage, error) {
	var stage model.Stage
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&stage).Error
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

// List returns placements newest first; an empty modality means all
func (r *stageRepo) List(ctx context.Context, modality model.Modality) ([]model.Stage, error) {
	var stages []model.Stage
	db := r.db.WithContext(ctx)

	if modality != "" {
		db = db.Where("modality = ?", modality)
	}

	err := db.Order("start_date DESC, id DESC").Find(&stages).Error
	return stages, err
}

func (r *stageRepo) Update(ctx context.Context, stage *model.Stage) error {
	return r.db.WithContext(ctx).Save(stage).Error
}

func (r *stageRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stage_id = ?", id).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("stage_id = ?", id).Delete(&model.Evaluation{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Stage{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
