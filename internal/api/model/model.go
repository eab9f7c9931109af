package model

import (
	"database/sql"
	"time"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
)

// User role constants. Callers are identified by an opaque id plus one of these.
const (
	RoleCustomer = "CUSTOMER"
	RoleProvider = "PROVIDER"
)

type User struct {
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

type ProviderProfile struct {
	ProfileID       string          `db:"profile_id"`
	UserID          string          `db:"user_id"`
	Skill           string          `db:"skill"`
	Suburb          string          `db:"suburb"`
	HourlyRateCents sql.NullInt64   `db:"hourly_rate_cents"`
	Bio             sql.NullString  `db:"bio"`
	ExperienceYears sql.NullInt64   `db:"experience_years"`
	Verified        bool            `db:"verified"`
	Rating          sql.NullFloat64 `db:"rating"`
	RatingsCount    int             `db:"ratings_count"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// ProviderWithName joins the profile row with the owning user's display name.
type ProviderWithName struct {
	ProviderProfile
	Name string `db:"name"`
}

// Job carries the provider name and suburb denormalized at creation time so
// the read path never joins back to the profile.
type Job struct {
	JobID             string           `db:"job_id"`
	CustomerID        string           `db:"customer_id"`
	ProviderProfileID string           `db:"provider_profile_id"`
	ProviderUserID    string           `db:"provider_user_id"`
	ProviderName      string           `db:"provider_name"`
	Title             string           `db:"title"`
	Notes             sql.NullString   `db:"notes"`
	Suburb            string           `db:"suburb"`
	ScheduledAt       time.Time        `db:"scheduled_at"`
	PriceCents        int64            `db:"price_cents"`
	Status            domain.JobStatus `db:"status"`
	CreatedAt         time.Time        `db:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at"`
}

// Payment is one-to-one with a job; job_id is the correlation key.
type Payment struct {
	JobID               string               `db:"job_id"`
	AmountCents         int64                `db:"amount_cents"`
	CommissionCents     int64                `db:"commission_cents"`
	ProviderPayoutCents int64                `db:"provider_payout_cents"`
	CheckoutURL         string               `db:"checkout_url"`
	Status              domain.PaymentStatus `db:"status"`
	CreatedAt           time.Time            `db:"created_at"`
	UpdatedAt           time.Time            `db:"updated_at"`
}

type Review struct {
	ReviewID   string         `db:"review_id"`
	JobID      string         `db:"job_id"`
	ProviderID string         `db:"provider_id"`
	CustomerID string         `db:"customer_id"`
	Rating     int            `db:"rating"`
	Comment    sql.NullString `db:"comment"`
	CreatedAt  time.Time      `db:"created_at"`
}

// Notification is the persisted record written by the notify worker.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	UserID         string    `db:"user_id"`
	Type           string    `db:"type"`
	Message        string    `db:"message"`
	CreatedAt      time.Time `db:"created_at"`
}
