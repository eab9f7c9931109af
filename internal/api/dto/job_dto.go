package dto

type CreateJobRequest struct {
	ProviderID  string `json:"provider_id" binding:"required"`
	ScheduledAt string `json:"scheduled_at"`
	Notes       string `json:"notes"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListJobsResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

type JobResponse struct {
	ID           string  `json:"id"`
	ProviderID   string  `json:"provider_id"`
	Title        string  `json:"title"`
	ProviderName string  `json:"provider_name"`
	Status       string  `json:"status"`
	ScheduledAt  string  `json:"scheduled_at"`
	Suburb       string  `json:"suburb"`
	PriceCents   int64   `json:"price_cents"`
	Notes        *string `json:"notes"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	HasReview    bool    `json:"has_review"`
}
