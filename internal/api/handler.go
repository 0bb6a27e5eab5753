package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dormitory-services-backend/internal/reservation"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	engine  *reservation.Engine
	backend string
}

// NewHandler creates a new API handler. backend names the active storage for health reporting.
func NewHandler(engine *reservation.Engine, backend string) *Handler {
	return &Handler{
		engine:  engine,
		backend: backend,
	}
}

// statusFor maps engine errors to HTTP status codes. Storage failures and
// anything unrecognised are server errors.
func statusFor(err error) int {
	switch {
	case errors.Is(err, reservation.ErrInvalidSpace), errors.Is(err, reservation.ErrMissingField):
		return http.StatusBadRequest
	case errors.Is(err, reservation.ErrDuplicateBooking):
		return http.StatusConflict
	case errors.Is(err, reservation.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
