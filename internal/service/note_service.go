package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/dto"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/repository"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/calendar"
	apperrors "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/errors"
)

// ── Note errors ──

var (
	ErrNoteNotFound = apperrors.NotFound("note")
	ErrNoteInvalid  = apperrors.Validation("invalid note")
)

func noteInvalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrNoteInvalid, msg)
}

// NoteService journal note use cases
type NoteService interface {
	// Save creates the note of (stage, date) or overwrites the existing one
	Save(ctx context.Context, req *dto.SaveNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, req *dto.NoteListRequest) ([]dto.NoteResponse, error)
	Delete(ctx context.Context, id uint) error
}

type noteService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNoteService creates a NoteService
func NewNoteService(repo *repository.Repository, logger *zap.Logger) NoteService {
	return &noteService{repo: repo, logger: logger}
}

// ────────────────────── Save ──────────────────────

func (s *noteService) Save(ctx context.Context, req *dto.SaveNoteRequest) (*dto.NoteResponse, error) {
	note, err := buildNote(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Stage.GetByID(ctx, note.StageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noteInvalid("stage does not exist")
		}
		s.logger.Error("get stage failed", zap.Uint("stage_id", note.StageID), zap.Error(err))
		return nil, apperrors.Store(err)
	}

	if err := s.repo.Note.Upsert(ctx, note); err != nil {
		s.logger.Error("save note failed",
			zap.Uint("stage_id", note.StageID),
			zap.Time("date", note.Date),
			zap.Error(err),
		)
		return nil, apperrors.Store(err)
	}

	return toNoteResponse(note), nil
}

// buildNote validates the request before anything reaches the store
func buildNote(req *dto.SaveNoteRequest) (*model.Note, error) {
	if req.StageID == 0 {
		return nil, noteInvalid("stage_id is required")
	}

	day, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, noteInvalid("date must use the YYYY-MM-DD format")
	}

	mood, ok := model.ParseMood(req.Mood)
	if !ok {
		return nil, noteInvalid(fmt.Sprintf("unknown mood %q", req.Mood))
	}

	note := &model.Note{
		StageID:     req.StageID,
		Date:        day,
		Mood:        mood,
		Activities:  strings.TrimSpace(req.Activities),
		Reflections: strings.TrimSpace(req.Reflections),
		Lessons:     strings.TrimSpace(req.Lessons),
	}
	if !note.HasContent() {
		return nil, noteInvalid("at least one of activities, reflections or lessons is required")
	}
	return note, nil
}

// ────────────────────── List ──────────────────────

func (s *noteService) List(ctx context.Context, req *dto.NoteListRequest) ([]dto.NoteResponse, error) {
	notes, err := s.repo.Note.List(ctx, req.StageID)
	if err != nil {
		s.logger.Error("list notes failed", zap.Uint("stage_id", req.StageID), zap.Error(err))
		return nil, apperrors.Store(err)
	}

	result := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		result = append(result, *toNoteResponse(&notes[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *noteService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Note.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		s.logger.Error("delete note failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Store(err)
	}
	return nil
}

func toNoteResponse(n *model.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		ID:          n.NoteID,
		StageID:     n.StageID,
		Date:        n.Date.Format(calendar.DateLayout),
		Mood:        string(n.Mood),
		MoodLabel:   n.Mood.Label(),
		MoodEmoji:   n.Mood.Emoji(),
		Activities:  n.Activities,
		Reflections: n.Reflections,
		Lessons:     n.Lessons,
		CreatedAt:   n.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:   n.UpdatedAt.UTC().Format(timestampLayout),
	}
}
