// Package handler holds the gin handlers of the portfolio API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// List sends a success response with the item count
func (h *BaseHandler) List(c *gin.Context, data any, total int) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, total))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		getRequestID(c),
		details,
	))
}

// BindError answers a failed ShouldBind* call
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleError converts err into a response: field validation failures
// answer 400 with details, domain errors answer with the status of their
// code, anything else is a 500. Server-side failures are logged.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if details := middleware.ValidationDetails(err); len(details) > 0 {
		h.ValidationError(c, details)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(code)
		if status >= http.StatusInternalServerError {
			logger.L(c.Request.Context()).Error("Request failed", zap.String("code", code), zap.Error(err))
		}
		h.Error(c, status, code, domainErr.Message)
		return
	}

	logger.L(c.Request.Context()).Error("Unexpected error", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}
