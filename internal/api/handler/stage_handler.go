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

// StageHandler placement endpoints
type StageHandler struct {
	stageSvc service.StageService
}

// NewStageHandler creates a StageHandler
func NewStageHandler(stageSvc service.StageService) *StageHandler {
	return &StageHandler{stageSvc: stageSvc}
}

// ListStages GET /api/v1/stages
func (h *StageHandler) ListStages(c *gin.Context) {
	var req dto.StageListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	stages, err := h.stageSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleStageError(c, err)
		return
	}

	response.OK(c, gin.H{"list": stages})
}

// MatchStage finds the placement covering a date
// GET /api/v1/stages/match?date=YYYY-MM-DD
func (h *StageHandler) MatchStage(c *gin.Context) {
	var req dto.StageMatchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.stageSvc.Match(c.Request.Context(), req.Date)
	if err != nil {
		h.handleStageError(c, err)
		return
	}

	response.OK(c, result)
}

// GetStage GET /api/v1/stages/:id
func (h *StageHandler) GetStage(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	stage, err := h.stageSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleStageError(c, err)
		return
	}

	response.OK(c, stage)
}

// GetStageStats GET /api/v1/stages/:id/stats
func (h *StageHandler) GetStageStats(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	result, err := h.stageSvc.Stats(c.Request.Context(), id)
	if err != nil {
		h.handleStageError(c, err)
		return
	}

	response.OK(c, result)
}

// CreateStage POST /api/v1/stages
func (h *StageHandler) CreateStage(c *gin.Context) {
	var req dto.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	stage, err := h.stageSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleStageError(c, err)
		return
	}

	response.Created(c, stage)
}

// UpdateStage PUT /api/v1/stages/:id
func (h *StageHandler) UpdateStage(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	stage, err := h.stageSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleStageError(c, err)
		return
	}

	response.OK(c, stage)
}

// DeleteStage deletes the placement with its notes and evaluations
// DELETE /api/v1/stages/:id
func (h *StageHandler) DeleteStage(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	if err := h.stageSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleStageError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *StageHandler) handleStageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStageNotFound):
		response.NotFound(c, response.CodeStageNotFound, "stage not found")
	case apperrors.IsValidation(err):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeStageInvalid, "invalid stage", apperrors.Message(err))
	default:
		c.Error(err)
		response.InternalError(c)
	}
}
