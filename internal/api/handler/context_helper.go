package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/response"
)

// MustGetID parses the :id path parameter.
// On failure it writes a 400 response; callers return when ok is false.
func MustGetID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, response.CodeBadParams, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// bindFailed answers a binding error with the validator message as details
func bindFailed(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "request body too large")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeBadParams, "invalid parameters", err.Error())
}
