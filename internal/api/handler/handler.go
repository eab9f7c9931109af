package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
	"github.com/handyconnect/handyconnect-be/internal/api/service"
)

// Context keys set by the actor middleware.
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// BrokerStatus reports whether the message broker connection is up.
type BrokerStatus interface {
	IsConnected() bool
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger    *slog.Logger
	Jobs      *service.JobService
	Payments  *service.PaymentService
	Providers *service.ProviderService
	Reviews   *service.ReviewService
	DB        HealthChecker
	Broker    BrokerStatus
}

// respondError maps domain errors onto HTTP statuses. Anything outside the
// known taxonomy is a 500 and gets logged with full detail.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled error",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
