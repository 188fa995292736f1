package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
)

// SetupValidator makes gin binding errors report JSON field names
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// ValidationDetails converts binding and domain validation errors into
// field details. Other errors give nil.
func ValidationDetails(err error) []dto.ValidationDetail {
	var (
		fieldErrs validator.ValidationErrors
		verrs     shared.ValidationErrors
		verr      *shared.ValidationError
	)
	switch {
	case errors.As(err, &fieldErrs):
		details := make([]dto.ValidationDetail, 0, len(fieldErrs))
		for _, e := range fieldErrs {
			details = append(details, dto.ValidationDetail{Field: fieldPath(e), Message: validationMessage(e)})
		}
		return details
	case errors.As(err, &verrs):
		details := make([]dto.ValidationDetail, 0, len(verrs))
		for _, e := range verrs {
			details = append(details, dto.ValidationDetail{Field: e.Field, Message: e.Message})
		}
		return details
	case errors.As(err, &verr):
		return []dto.ValidationDetail{{Field: verr.Field, Message: verr.Message}}
	default:
		return nil
	}
}

// HandleValidationError answers 400 with the field details of err. Errors
// that carry no field details (malformed JSON) get a plain bad request.
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString(logger.RequestIDKey)
	details := ValidationDetails(err)
	if len(details) == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidJSON, "Invalid request body", requestID))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Request validation failed", requestID, details))
}

// fieldPath drops the root struct name: "projectRequest.links[0]" -> "links[0]"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// validationMessage returns a human-readable validation message
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "url", "http_url":
		return "Invalid URL format"
	case "hexcolor":
		return "Must be a hex colour such as #6366f1"
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}
