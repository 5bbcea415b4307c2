package repository

import "gorm.io/gorm"

// Repository entry point aggregating every repository
type Repository struct {
	Stage      StageRepository
	Note       NoteRepository
	Evaluation EvaluationRepository
}

// NewRepository builds the Repository aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Stage:      NewStageRepo(db),
		Note:       NewNoteRepo(db),
		Evaluation: NewEvaluationRepo(db),
	}
}
