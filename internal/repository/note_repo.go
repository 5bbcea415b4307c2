package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
)

// NoteRepository journal entry data access
type NoteRepository interface {
	// Upsert inserts the note or overwrites the one stored for the same
	// (stage_id, date); note is refreshed with the stored row.
	Upsert(ctx context.Context, note *model.Note) error
	GetByID(ctx context.Context, id uint) (*model.Note, error)
	List(ctx context.Context, stageID uint) ([]model.Note, error)
	Delete(ctx context.Context, id uint) error
}

type noteRepo struct {
	db *gorm.DB
}

// NewNoteRepo creates a NoteRepository
func NewNoteRepo(db *gorm.DB) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Upsert(ctx context.Context, note *model.Note) error {
	note.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "stage_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"mood", "activities", "reflections", "lessons", "updated_at",
			}),
		}).
		Create(note).Error
	if err != nil {
		return err
	}

	// the conflict path does not reliably report the surviving id
	var stored model.Note
	err = r.db.WithContext(ctx).
		Where("stage_id = ? AND date = ?", note.StageID, note.Date).
		First(&stored).Error
	if err != nil {
		return err
	}
	*note = stored
	return nil
}

func (r *noteRepo) GetByID(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// List returns notes newest first; stageID 0 means every placement
func (r *noteRepo) List(ctx context.Context, stageID uint) ([]model.Note, error) {
	var notes []model.Note
	db := r.db.WithContext(ctx)

	if stageID != 0 {
		db = db.Where("stage_id = ?", stageID)
	}

	err := db.Order("date DESC, id DESC").Find(&notes).Error
	return notes, err
}

func (r *noteRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
