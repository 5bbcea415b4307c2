package service

import (
	"go.uber.org/zap"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/repository"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/calendar"
)

// Service aggregate of every service
type Service struct {
	Stage      StageService
	Note       NoteService
	Evaluation EvaluationService
	Stats      StatsService
	Calendar   CalendarService
	Export     ExportService
}

// NewService wires the services; holidays feed the working-day calculator
func NewService(
	repo *repository.Repository,
	holidays calendar.HolidaySet,
	logger *zap.Logger,
) *Service {
	return &Service{
		Stage:      NewStageService(repo, holidays, logger),
		Note:       NewNoteService(repo, logger),
		Evaluation: NewEvaluationService(repo, logger),
		Stats:      NewStatsService(repo, logger),
		Calendar:   NewCalendarService(holidays),
		Export:     NewExportService(repo, logger),
	}
}
