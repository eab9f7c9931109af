package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/handyconnect/handyconnect-be/internal/api/handler"
	"github.com/handyconnect/handyconnect-be/internal/api/model"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{
			"status":  "healthy",
			"service": "handyconnect-api-service",
		}

		if deps.DB != nil {
			if err := deps.DB.HealthCheck(c.Request.Context()); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "unhealthy"
				body["database"] = err.Error()
			}
		}
		if deps.Broker != nil && !deps.Broker.IsConnected() {
			body["broker"] = "disconnected"
		}

		c.JSON(status, body)
	})

	jobHandler := handler.NewJobHandler(deps)
	paymentHandler := handler.NewPaymentHandler(deps)
	providerHandler := handler.NewProviderHandler(deps)
	reviewHandler := handler.NewReviewHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")

	// The gateway calls the webhook without user headers.
	v1.POST("/payments/webhook", paymentHandler.Webhook)

	authed := v1.Group("")
	authed.Use(ActorMiddleware())
	{
		jobs := authed.Group("/jobs")
		{
			// POST /api/v1/jobs - Book a job with a provider
			jobs.POST("", RequireRole(model.RoleCustomer), jobHandler.CreateJob)

			// GET /api/v1/jobs - List the caller's jobs
			jobs.GET("", jobHandler.ListJobs)

			// GET /api/v1/jobs/:job_id - Get job details
			jobs.GET("/:job_id", jobHandler.GetJob)

			// PATCH /api/v1/jobs/:job_id/status - Advance the job lifecycle
			jobs.PATCH("/:job_id/status", RequireRole(model.RoleProvider), jobHandler.UpdateJobStatus)
		}

		payments := authed.Group("/payments")
		{
			// POST /api/v1/payments/checkout - Create a checkout for a job
			payments.POST("/checkout", RequireRole(model.RoleCustomer), paymentHandler.CreateCheckout)

			// GET /api/v1/payments/:job_id - Get the payment for a job
			payments.GET("/:job_id", paymentHandler.GetPayment)
		}

		providers := authed.Group("/providers")
		{
			// GET /api/v1/providers - Browse the provider directory
			providers.GET("", providerHandler.ListProviders)

			// PUT /api/v1/providers/me - Create or update own profile
			providers.PUT("/me", RequireRole(model.RoleProvider), providerHandler.UpsertProfile)

			// GET /api/v1/providers/:profile_id - Get one provider
			providers.GET("/:profile_id", providerHandler.GetProvider)
		}

		// POST /api/v1/reviews - Review a completed job
		authed.POST("/reviews", RequireRole(model.RoleCustomer), reviewHandler.CreateReview)
	}

	return r
}
