package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/handyconnect/handyconnect-be/internal/api/dto"
	"github.com/handyconnect/handyconnect-be/internal/api/service"
)

// ReviewHandler handles review submission
type ReviewHandler struct {
	logger  *slog.Logger
	reviews *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler instance
func NewReviewHandler(deps *Dependencies) *ReviewHandler {
	return &ReviewHandler{
		logger:  deps.Logger,
		reviews: deps.Reviews,
	}
}

// CreateReview handles POST /api/v1/reviews
// Records the calling customer's review of a completed job
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), c.GetString(ContextUserID), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}
