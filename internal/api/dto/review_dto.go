package dto

type CreateReviewRequest struct {
	JobID   string `json:"job_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ReviewResponse struct {
	ID         string  `json:"id"`
	JobID      string  `json:"job_id"`
	ProviderID string  `json:"provider_id"`
	Rating     int     `json:"rating"`
	Comment    *string `json:"comment"`
	CreatedAt  string  `json:"created_at"`
}
