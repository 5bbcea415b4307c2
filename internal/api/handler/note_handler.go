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

// NoteHandler journal note endpoints
type NoteHandler struct {
	noteSvc service.NoteService
}

// NewNoteHandler creates a NoteHandler
func NewNoteHandler(noteSvc service.NoteService) *NoteHandler {
	return &NoteHandler{noteSvc: noteSvc}
}

// ListNotes GET /api/v1/notes?stage_id=
func (h *NoteHandler) ListNotes(c *gin.Context) {
	var req dto.NoteListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	notes, err := h.noteSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleNoteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": notes})
}

// SaveNote creates or overwrites the note of (stage_id, date)
// POST /api/v1/notes
func (h *NoteHandler) SaveNote(c *gin.Context) {
	var req dto.SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	note, err := h.noteSvc.Save(c.Request.Context(), &req)
	if err != nil {
		h.handleNoteError(c, err)
		return
	}

	response.OK(c, note)
}

// DeleteNote DELETE /api/v1/notes/:id
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	if err := h.noteSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleNoteError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *NoteHandler) handleNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		response.NotFound(c, response.CodeNoteNotFound, "note not found")
	case apperrors.IsValidation(err):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeNoteInvalid, "invalid note", apperrors.Message(err))
	default:
		c.Error(err)
		response.InternalError(c)
	}
}
