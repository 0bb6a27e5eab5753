package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dormitory-services-backend/internal/model"
	"dormitory-services-backend/internal/reservation"
)

// GetSpaces handles GET /api/reservations/spaces.
func (h *Handler) GetSpaces(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Spaces())
}

// GetAvailability handles GET /api/reservations/availability?spaceId=&date=.
func (h *Handler) GetAvailability(c *gin.Context) {
	availability, err := h.engine.Availability(c.Request.Context(), c.Query("spaceId"), c.Query("date"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

// CreateReservation handles POST /api/reservations.
func (h *Handler) CreateReservation(c *gin.Context) {
	var req reservation.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.engine.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetMyReservations handles GET /api/reservations/my?studentId=.
func (h *Handler) GetMyReservations(c *gin.Context) {
	rows, err := h.engine.ListMine(c.Request.Context(), c.Query("studentId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(rows))
}

// CancelReservation handles DELETE /api/reservations/:id.
func (h *Handler) CancelReservation(c *gin.Context) {
	result, err := h.engine.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var promoted any
	if result.Promoted != nil {
		promoted = result.Promoted.ID
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": result.Cancelled.ID, "promoted": promoted})
}

// GetAllReservations handles GET /api/reservations/all?spaceId=&date=.
func (h *Handler) GetAllReservations(c *gin.Context) {
	rows, err := h.engine.ListAll(c.Request.Context(), reservation.ListFilter{
		SpaceID: c.Query("spaceId"),
		Date:    c.Query("date"),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(rows))
}

// nonNil keeps empty listings encoded as [] instead of null.
func nonNil(rows []model.Reservation) []model.Reservation {
	if rows == nil {
		return []model.Reservation{}
	}
	return rows
}
