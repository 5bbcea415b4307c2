package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/dto"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/repository"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/stats"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/calendar"
	apperrors "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/errors"
)

// ── Stage errors ──

var (
	ErrStageNotFound = apperrors.NotFound("stage")
	ErrStageInvalid  = apperrors.Validation("invalid stage")
)

func stageInvalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStageInvalid, fmt.Sprintf(format, args...))
}

// StageService placement use cases
type StageService interface {
	Create(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.StageResponse, error)
	List(ctx context.Context, req *dto.StageListRequest) ([]dto.StageResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateStageRequest) (*dto.StageResponse, error)
	// Delete removes the placement and cascades to its notes and evaluations
	Delete(ctx context.Context, id uint) error
	// Match finds the placement whose window contains date
	Match(ctx context.Context, date string) (*dto.StageMatchResponse, error)
	Stats(ctx context.Context, id uint) (*dto.StageStatsResponse, error)
}

type stageService struct {
	repo     *repository.Repository
	holidays calendar.HolidaySet
	logger   *zap.Logger
}

// NewStageService creates a StageService; holidays may be nil (weekends only)
func NewStageService(repo *repository.Repository, holidays calendar.HolidaySet, logger *zap.Logger) StageService {
	return &stageService{repo: repo, holidays: holidays, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *stageService) Create(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, stageInvalid("name is required")
	}

	modality, ok := model.ParseModality(req.Modality)
	if !ok {
		return nil, stageInvalid("unknown modality %q", req.Modality)
	}

	start, end, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	stage := &model.Stage{
		Name:       name,
		Modality:   modality,
		Emoji:      strings.TrimSpace(req.Emoji),
		Location:   strings.TrimSpace(req.Location),
		Supervisor: strings.TrimSpace(req.Supervisor),
		Manager:    strings.TrimSpace(req.Manager),
		StartDate:  start,
		EndDate:    end,
	}
	if stage.Emoji == "" {
		stage.Emoji = modality.Emoji()
	}
	stage.WorkingDays = calendar.WorkingDays(start, end, s.holidays)

	if err := s.repo.Stage.Create(ctx, stage); err != nil {
		s.logger.Error("create stage failed", zap.Error(err))
		return nil, apperrors.Store(err)
	}

	s.logger.Info("stage created",
		zap.Uint("id", stage.StageID),
		zap.String("modality", string(stage.Modality)),
		zap.Int("working_days", stage.WorkingDays),
	)
	return toStageResponse(stage), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *stageService) GetByID(ctx context.Context, id uint) (*dto.StageResponse, error) {
	stage, err := s.getStage(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStageResponse(stage), nil
}

// ────────────────────── List ──────────────────────

func (s *stageService) List(ctx context.Context, req *dto.StageListRequest) ([]dto.StageResponse, error) {
	var modality model.Modality
	if strings.TrimSpace(req.Modality) != "" {
		m, ok := model.ParseModality(req.Modality)
		if !ok {
			return nil, stageInvalid("unknown modality %q", req.Modality)
		}
		modality = m
	}

	stages, err := s.repo.Stage.List(ctx, modality)
	if err != nil {
		s.logger.Error("list stages failed", zap.Error(err))
		return nil, apperrors.Store(err)
	}

	result := make([]dto.StageResponse, 0, len(stages))
	for i := range stages {
		result = append(result, *toStageResponse(&stages[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *stageService) Update(ctx context.Context, id uint, req *dto.UpdateStageRequest) (*dto.StageResponse, error) {
	stage, err := s.getStage(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, stageInvalid("name is required")
		}
		stage.Name = name
	}
	if req.Modality != nil {
		m, ok := model.ParseModality(*req.Modality)
		if !ok {
			return nil, stageInvalid("unknown modality %q", *req.Modality)
		}
		stage.Modality = m
	}
	if req.Emoji != nil {
		stage.Emoji = strings.TrimSpace(*req.Emoji)
	}
	if stage.Emoji == "" {
		stage.Emoji = stage.Modality.Emoji()
	}
	if req.Location != nil {
		stage.Location = strings.TrimSpace(*req.Location)
	}
	if req.Supervisor != nil {
		stage.Supervisor = strings.TrimSpace(*req.Supervisor)
	}
	if req.Manager != nil {
		stage.Manager = strings.TrimSpace(*req.Manager)
	}

	startRaw := stage.StartDate.Format(calendar.DateLayout)
	endRaw := stage.EndDate.Format(calendar.DateLayout)
	if req.StartDate != nil {
		startRaw = *req.StartDate
	}
	if req.EndDate != nil {
		endRaw = *req.EndDate
	}
	start, end, err := parseWindow(startRaw, endRaw)
	if err != nil {
		return nil, err
	}
	stage.StartDate, stage.EndDate = start, end
	stage.WorkingDays = calendar.WorkingDays(start, end, s.holidays)

	if err := s.repo.Stage.Update(ctx, stage); err != nil {
		s.logger.Error("update stage failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.Store(err)
	}

	return toStageResponse(stage), nil
}

// ────────────────────── Delete ──────────────────────

func (s *stageService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Stage.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStageNotFound
		}
		s.logger.Error("delete stage failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Store(err)
	}

	s.logger.Info("stage deleted with its notes and evaluations", zap.Uint("id", id))
	return nil
}

// ────────────────────── Match ──────────────────────

func (s *stageService) Match(ctx context.Context, date string) (*dto.StageMatchResponse, error) {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return nil, stageInvalid("date must use the YYYY-MM-DD format")
	}

	stages, err := s.repo.Stage.List(ctx, "")
	if err != nil {
		s.logger.Error("list stages failed", zap.Error(err))
		return nil, apperrors.Store(err)
	}

	stage, ok := stats.FindStageForDate(day, stages)
	if !ok {
		return &dto.StageMatchResponse{Found: false}, nil
	}
	return &dto.StageMatchResponse{Found: true, Stage: toStageResponse(stage)}, nil
}

// ────────────────────── Stats ──────────────────────

func (s *stageService) Stats(ctx context.Context, id uint) (*dto.StageStatsResponse, error) {
	stage, err := s.getStage(ctx, id)
	if err != nil {
		return nil, err
	}

	notes, err := s.repo.Note.List(ctx, id)
	if err != nil {
		s.logger.Error("list notes failed", zap.Uint("stage_id", id), zap.Error(err))
		return nil, apperrors.Store(err)
	}

	resp := toStageStatsResponse(stats.ForStage(*stage, notes))
	return &resp, nil
}

// ── helpers ──

func (s *stageService) getStage(ctx context.Context, id uint) (*model.Stage, error) {
	stage, err := s.repo.Stage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		s.logger.Error("get stage failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.Store(err)
	}
	return stage, nil
}

func parseWindow(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := calendar.ParseDate(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, stageInvalid("start_date must use the YYYY-MM-DD format")
	}
	end, err := calendar.ParseDate(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, stageInvalid("end_date must use the YYYY-MM-DD format")
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, stageInvalid("start_date must be on or before end_date")
	}
	return start, end, nil
}

const timestampLayout = "2006-01-02T15:04:05Z"

func toStageResponse(st *model.Stage) *dto.StageResponse {
	return &dto.StageResponse{
		ID:            st.StageID,
		Name:          st.Name,
		Modality:      string(st.Modality),
		ModalityLabel: st.Modality.Label(),
		Emoji:         st.Emoji,
		Location:      st.Location,
		Supervisor:    st.Supervisor,
		Manager:       st.Manager,
		StartDate:     st.StartDate.Format(calendar.DateLayout),
		EndDate:       st.EndDate.Format(calendar.DateLayout),
		WorkingDays:   st.WorkingDays,
		CreatedAt:     st.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:     st.UpdatedAt.UTC().Format(timestampLayout),
	}
}

func toBreakdownResponse(b stats.Breakdown) dto.MoodBreakdownResponse {
	resp := dto.MoodBreakdownResponse{
		Total: b.Total,
		Moods: make([]dto.MoodStatResponse, 0, len(b.Moods)),
	}
	for _, m := range b.Moods {
		resp.Moods = append(resp.Moods, dto.MoodStatResponse{
			Mood:       string(m.Mood),
			Label:      m.Mood.Label(),
			Emoji:      m.Mood.Emoji(),
			Count:      m.Count,
			Percentage: m.Percentage,
		})
	}
	return resp
}

func toStageStatsResponse(st stats.StageStats) dto.StageStatsResponse {
	return dto.StageStatsResponse{
		Stage:      *toStageResponse(&st.Stage),
		Moods:      toBreakdownResponse(st.Breakdown),
		TotalDays:  st.TotalDays,
		LoggedDays: st.LoggedDays,
	}
}
