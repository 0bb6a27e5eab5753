package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"dormitory-services-backend/config"
	"dormitory-services-backend/internal/mw"
	"dormitory-services-backend/internal/reservation"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(engine *reservation.Engine, cfg *config.Config, backend string) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(engine, backend)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	// Availability is cached until the next successful booking or cancellation.
	responses := mw.NewResponseCache(cfg.Server.CacheTTL)
	caching := responses.Cache()

	r.GET("/healthz", handler.GetHealth)

	api := r.Group("/api")
	api.Use(rateLimiter)

	reservations := api.Group("/reservations")
	reservations.Use(responses.InvalidateOnWrite())
	{
		reservations.GET("/spaces", caching, handler.GetSpaces)
		reservations.GET("/availability", caching, handler.GetAvailability)
		reservations.POST("", handler.CreateReservation)
		reservations.GET("/my", handler.GetMyReservations)
		reservations.DELETE("/:id", handler.CancelReservation)

		if cfg.Admin.Enabled() {
			admin := gin.BasicAuth(gin.Accounts{cfg.Admin.Username: cfg.Admin.Password})
			reservations.GET("/all", admin, handler.GetAllReservations)
		} else {
			reservations.GET("/all", handler.GetAllReservations)
		}
	}

	return r
}
