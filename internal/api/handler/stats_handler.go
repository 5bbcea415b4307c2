package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/dto"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/service"
	apperrors "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/errors"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/response"
)

// StatsHandler statistics and working-day endpoints
type StatsHandler struct {
	statsSvc    service.StatsService
	calendarSvc service.CalendarService
}

// NewStatsHandler creates a StatsHandler
func NewStatsHandler(statsSvc service.StatsService, calendarSvc service.CalendarService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc, calendarSvc: calendarSvc}
}

// GetStats global and per-placement mood statistics
// GET /api/v1/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	result, err := h.statsSvc.Overview(c.Request.Context())
	if err != nil {
		c.Error(err)
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// WorkingDays GET /api/v1/working-days?start=&end=
func (h *StatsHandler) WorkingDays(c *gin.Context) {
	var req dto.WorkingDaysRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.calendarSvc.WorkingDays(&req)
	if err != nil {
		if apperrors.IsValidation(err) {
			response.BadRequest(c, response.CodeBadParams, apperrors.Message(err))
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
