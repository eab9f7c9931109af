package redis

import "time"

const (
	// Cached job status: job_status:{job_id} -> status string
	KeyJobStatus = "job_status:%s"
)

var (
	TTLJobStatus = 5 * time.Minute
)
