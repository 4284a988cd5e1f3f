package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/internal/models"
)

type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

// StatusFor maps a domain error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrCancellationPending), errors.Is(err, models.ErrTicketAlreadyRedeemed):
		return http.StatusConflict
	case errors.Is(err, models.ErrExternalService):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// RespondWithDomainError writes err with the status StatusFor picks.
// Internal errors are logged and replaced by fallback so nothing leaks.
func RespondWithDomainError(c *gin.Context, err error, fallback string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		RespondWithError(c, status, fallback)
		return
	}

	resp := ErrorResponse{
		Error:   HTTPStatusText(status),
		Message: err.Error(),
	}
	var verrs models.ValidationErrors
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verrs):
		resp.Message = "Invalid input. Please check your fields."
		for _, fe := range verrs {
			resp.Fields = append(resp.Fields, FieldError{Field: fe.Field, Message: fe.Message})
		}
	case errors.As(err, &verr):
		resp.Fields = []FieldError{{Field: verr.Field, Message: verr.Message}}
	}
	c.AbortWithStatusJSON(status, resp)
}
