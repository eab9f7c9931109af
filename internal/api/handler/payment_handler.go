package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/handyconnect/handyconnect-be/internal/api/dto"
	"github.com/handyconnect/handyconnect-be/internal/api/service"
)

// PaymentHandler handles checkout creation and gateway webhooks
type PaymentHandler struct {
	logger   *slog.Logger
	payments *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler instance
func NewPaymentHandler(deps *Dependencies) *PaymentHandler {
	return &PaymentHandler{
		logger:   deps.Logger,
		payments: deps.Payments,
	}
}

// CreateCheckout handles POST /api/v1/payments/checkout
// Upserts the payment row for a job and returns the checkout redirect URL
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var req dto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	resp, err := h.payments.CreateCheckout(c.Request.Context(), req.JobID, req.AmountCents)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Webhook handles POST /api/v1/payments/webhook
// Applies a payment gateway status callback. The gateway retries on non-2xx,
// so state conflicts are reported as 409 and will keep failing on replay.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid webhook body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	h.logger.Info("Payment webhook received",
		slog.String("job_id", req.JobID),
		slog.String("status", req.Status),
	)

	payment, err := h.payments.HandleWebhook(c.Request.Context(), req.JobID, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GetPayment handles GET /api/v1/payments/:job_id
// Returns the payment record for a job
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	jobID := c.Param("job_id")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "job_id is required",
		})
		return
	}

	payment, err := h.payments.PaymentForJob(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentResponse{
		JobID:               payment.JobID,
		AmountCents:         payment.AmountCents,
		CommissionCents:     payment.CommissionCents,
		ProviderPayoutCents: payment.ProviderPayoutCents,
		CheckoutURL:         payment.CheckoutURL,
		Status:              string(payment.Status),
	})
}
