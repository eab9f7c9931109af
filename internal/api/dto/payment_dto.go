package dto

type CreateCheckoutRequest struct {
	JobID       string `json:"job_id" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
}

type CreateCheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

type WebhookRequest struct {
	JobID  string `json:"job_id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

type PaymentResponse struct {
	JobID               string `json:"job_id"`
	AmountCents         int64  `json:"amount_cents"`
	CommissionCents     int64  `json:"commission_cents"`
	ProviderPayoutCents int64  `json:"provider_payout_cents"`
	CheckoutURL         string `json:"checkout_url"`
	Status              string `json:"status"`
}
