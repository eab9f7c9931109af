package dto

type ListProvidersRequest struct {
	Skill  string `form:"skill"`
	Suburb string `form:"suburb"`
}

type ListProvidersResponse struct {
	Providers []ProviderResponse `json:"providers"`
}

type UpdateProviderProfileRequest struct {
	Skill           string `json:"skill"`
	Suburb          string `json:"suburb"`
	HourlyRateCents *int64 `json:"hourly_rate_cents"`
	Bio             string `json:"bio"`
	ExperienceYears *int64 `json:"experience_years"`
}

type ProviderResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	Name            string   `json:"name"`
	Skill           string   `json:"skill"`
	Suburb          string   `json:"suburb"`
	HourlyRateCents *int64   `json:"hourly_rate_cents"`
	Bio             *string  `json:"bio"`
	ExperienceYears *int64   `json:"experience_years"`
	Verified        bool     `json:"verified"`
	Rating          *float64 `json:"rating"`
	RatingCount     int      `json:"rating_count"`
}
