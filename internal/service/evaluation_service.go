package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/dto"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/repository"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/calendar"
	apperrors "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/errors"
)

// ── Evaluation errors ──

var (
	ErrEvaluationInvalid      = apperrors.Validation("invalid evaluation")
	ErrEvaluationStageMissing = apperrors.Validation("evaluation stage does not exist")
)

func evaluationInvalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrEvaluationInvalid, fmt.Sprintf(format, args...))
}

// EvaluationService self-evaluation use cases; evaluations are never
// updated or deleted on their own
type EvaluationService interface {
	Create(ctx context.Context, req *dto.CreateEvaluationRequest) (*dto.EvaluationResponse, error)
	List(ctx context.Context, req *dto.EvaluationListRequest) ([]dto.EvaluationResponse, error)
}

type evaluationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEvaluationService creates an EvaluationService
func NewEvaluationService(repo *repository.Repository, logger *zap.Logger) EvaluationService {
	return &evaluationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *evaluationService) Create(ctx context.Context, req *dto.CreateEvaluationRequest) (*dto.EvaluationResponse, error) {
	eval, err := buildEvaluation(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Stage.GetByID(ctx, eval.StageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationStageMissing
		}
		s.logger.Error("get stage failed", zap.Uint("stage_id", eval.StageID), zap.Error(err))
		return nil, apperrors.Store(err)
	}

	if err := s.repo.Evaluation.Create(ctx, eval); err != nil {
		s.logger.Error("create evaluation failed", zap.Uint("stage_id", eval.StageID), zap.Error(err))
		return nil, apperrors.Store(err)
	}

	return toEvaluationResponse(eval), nil
}

// buildEvaluation requires exactly ten scores, none missing, each in [0, 4].
// A client supplied total must equal the sum.
func buildEvaluation(req *dto.CreateEvaluationRequest) (*model.Evaluation, error) {
	if req.StageID == 0 {
		return nil, evaluationInvalid("stage_id is required")
	}

	day, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, evaluationInvalid("date must use the YYYY-MM-DD format")
	}

	if len(req.Scores) != model.CriteriaCount {
		return nil, evaluationInvalid("expected %d scores, got %d", model.CriteriaCount, len(req.Scores))
	}

	scores := make([]int, 0, model.CriteriaCount)
	for i, sc := range req.Scores {
		if sc == nil {
			return nil, evaluationInvalid("criterion %d (%s) is not scored", i+1, model.Criteria[i])
		}
		if *sc < 0 || *sc > model.MaxCriterionScore {
			return nil, evaluationInvalid("criterion %d score must be between 0 and %d", i+1, model.MaxCriterionScore)
		}
		scores = append(scores, *sc)
	}

	total := model.SumScores(scores)
	if req.TotalScore != nil && *req.TotalScore != total {
		return nil, evaluationInvalid("total_score %d does not match the sum %d", *req.TotalScore, total)
	}

	return &model.Evaluation{
		StageID:    req.StageID,
		Date:       day,
		Scores:     scores,
		TotalScore: total,
	}, nil
}

// ────────────────────── List ──────────────────────

func (s *evaluationService) List(ctx context.Context, req *dto.EvaluationListRequest) ([]dto.EvaluationResponse, error) {
	evals, err := s.repo.Evaluation.List(ctx, req.StageID)
	if err != nil {
		s.logger.Error("list evaluations failed", zap.Uint("stage_id", req.StageID), zap.Error(err))
		return nil, apperrors.Store(err)
	}

	result := make([]dto.EvaluationResponse, 0, len(evals))
	for i := range evals {
		result = append(result, *toEvaluationResponse(&evals[i]))
	}
	return result, nil
}

func toEvaluationResponse(e *model.Evaluation) *dto.EvaluationResponse {
	resp := &dto.EvaluationResponse{
		ID:         e.EvaluationID,
		StageID:    e.StageID,
		Date:       e.Date.Format(calendar.DateLayout),
		Scores:     []int(e.Scores),
		Criteria:   make([]dto.CriterionScore, 0, len(e.Scores)),
		TotalScore: e.TotalScore,
		MaxScore:   model.CriteriaCount * model.MaxCriterionScore,
		CreatedAt:  e.CreatedAt.UTC().Format(timestampLayout),
	}
	for i, sc := range e.Scores {
		if i >= model.CriteriaCount {
			break
		}
		resp.Criteria = append(resp.Criteria, dto.CriterionScore{Criterion: model.Criteria[i], Score: sc})
	}
	return resp
}
