package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response envelope shared by every JSON endpoint
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// Error codes returned in Response.Code
const (
	CodeOK              = 0
	CodeBadParams       = 10001
	CodeRateLimited     = 10004
	CodeBodyTooLarge    = 10005
	CodeStageNotFound   = 20001
	CodeStageInvalid    = 20002
	CodeNoteNotFound    = 21001
	CodeNoteInvalid     = 21002
	CodeEvalInvalid     = 22001
	CodeEvalStageAbsent = 22002
	CodeInternal        = 50000
)

// ── Success ──

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// ── Errors ──

// Error generic error response
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails error response carrying details, e.g. binding errors
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}
