package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/handyconnect/handyconnect-be/internal/api/dto"
	"github.com/handyconnect/handyconnect-be/internal/api/service"
)

// ProviderHandler serves the provider directory and profile management
type ProviderHandler struct {
	logger    *slog.Logger
	providers *service.ProviderService
}

// NewProviderHandler creates a new ProviderHandler instance
func NewProviderHandler(deps *Dependencies) *ProviderHandler {
	return &ProviderHandler{
		logger:    deps.Logger,
		providers: deps.Providers,
	}
}

// ListProviders handles GET /api/v1/providers
// Lists providers, optionally filtered by skill and suburb
func (h *ProviderHandler) ListProviders(c *gin.Context) {
	var req dto.ListProvidersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	providers, err := h.providers.List(c.Request.Context(), req.Skill, req.Suburb)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListProvidersResponse{Providers: providers})
}

// GetProvider handles GET /api/v1/providers/:profile_id
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	profileID := c.Param("profile_id")
	if profileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "profile_id is required",
		})
		return
	}

	provider, err := h.providers.GetByID(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, provider)
}

// UpsertProfile handles PUT /api/v1/providers/me
// Creates or updates the calling provider's own profile
func (h *ProviderHandler) UpsertProfile(c *gin.Context) {
	var req dto.UpdateProviderProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	provider, err := h.providers.UpsertForUser(c.Request.Context(), c.GetString(ContextUserID), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, provider)
}
