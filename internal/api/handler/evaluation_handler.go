package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/dto"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/service"
	apperrors "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/errors"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/response"
)

// EvaluationHandler self-evaluation endpoints
type EvaluationHandler struct {
	evalSvc service.EvaluationService
}

// NewEvaluationHandler creates an EvaluationHandler
func NewEvaluationHandler(evalSvc service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evalSvc: evalSvc}
}

// ListEvaluations GET /api/v1/evaluations?stage_id=
func (h *EvaluationHandler) ListEvaluations(c *gin.Context) {
	var req dto.EvaluationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	evals, err := h.evalSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": evals})
}

// CreateEvaluation POST /api/v1/evaluations
func (h *EvaluationHandler) CreateEvaluation(c *gin.Context) {
	var req dto.CreateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	eval, err := h.evalSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	response.Created(c, eval)
}

func (h *EvaluationHandler) handleEvaluationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEvaluationStageMissing):
		response.BadRequest(c, response.CodeEvalStageAbsent, "evaluation stage does not exist")
	case apperrors.IsValidation(err):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeEvalInvalid, "invalid evaluation", apperrors.Message(err))
	default:
		c.Error(err)
		response.InternalError(c)
	}
}
