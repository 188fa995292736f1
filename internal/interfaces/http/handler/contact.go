package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
)

// ContactSubmitter accepts contact form messages
type ContactSubmitter interface {
	Submit(ctx context.Context, msg content.ContactMessage) error
}

// ContactRequest is the public contact form
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactHandler handles the public contact form
type ContactHandler struct {
	BaseHandler
	contact ContactSubmitter
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contact ContactSubmitter) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Submit acknowledges a contact message with {ok:true}. A missing field
// answers 400 with {ok:false} naming the field.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ContactResponse{OK: false, Message: "Invalid request body"})
		return
	}

	err := h.contact.Submit(c.Request.Context(), content.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	var verr *shared.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.ContactResponse{OK: true, Message: "Message received"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ContactResponse{OK: false, Message: verr.Message, Field: verr.Field})
	default:
		h.HandleError(c, err)
	}
}
