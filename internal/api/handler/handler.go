package handler

import "github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/service"

// Handler aggregate of every handler
type Handler struct {
	Stage      *StageHandler
	Note       *NoteHandler
	Evaluation *EvaluationHandler
	Stats      *StatsHandler
	Export     *ExportHandler
}

// NewHandler wires the handlers to the services
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Stage:      NewStageHandler(svc.Stage),
		Note:       NewNoteHandler(svc.Note),
		Evaluation: NewEvaluationHandler(svc.Evaluation),
		Stats:      NewStatsHandler(svc.Stats, svc.Calendar),
		Export:     NewExportHandler(svc.Export),
	}
}
