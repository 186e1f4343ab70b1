package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/babygenie/service-planner/internal/platform/domain"
)

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Envelope is the body of every JSON response.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Success writes a 200 response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Paginated writes a 200 response carrying a page of items.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    items,
		Pagination: &Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// Error maps a typed domain error onto a status code. Untyped errors become a 500
// with a generic message; the cause is attached to the gin context for the logger.
func Error(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		abort(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case domain.IsNotFound(err):
		abort(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case domain.IsConflict(err):
		abort(c, http.StatusConflict, "CONFLICT", err.Error())
	case domain.IsUnauthorized(err):
		abort(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case domain.IsUpstream(err):
		_ = c.Error(err)
		abort(c, http.StatusBadGateway, "UPSTREAM_ERROR", "an upstream service is unavailable")
	default:
		_ = c.Error(err)
		abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
	})
}
