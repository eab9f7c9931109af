// Package cache provides a Redis-backed job status cache. The database row
// stays authoritative; cached entries expire and may be stale, so callers
// only use them to short-circuit reads that a stale value cannot corrupt.
package cache

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
	"github.com/handyconnect/handyconnect-be/shared/redis"
)

// JobStatusCache stores the latest known status per job under a TTL key.
type JobStatusCache struct {
	client *redis.Client
	logger *slog.Logger
}

func NewJobStatusCache(client *redis.Client, logger *slog.Logger) *JobStatusCache {
	return &JobStatusCache{
		client: client,
		logger: logger,
	}
}

// GetJobStatus returns the cached status for a job. A miss, an unknown
// value, or a Redis error all report not-found; the caller falls back to
// the database.
func (c *JobStatusCache) GetJobStatus(ctx context.Context, jobID string) (domain.JobStatus, bool) {
	key := fmt.Sprintf(redis.KeyJobStatus, jobID)

	val, err := c.client.GetRedis().Get(ctx, key).Result()
	if err != nil {
		if err != goredis.Nil {
			c.logger.Warn("Status cache read failed",
				slog.String("job_id", jobID),
				slog.String("error", err.Error()),
			)
		}
		return "", false
	}

	status := domain.JobStatus(val)
	if !domain.ValidJobStatus(status) {
		return "", false
	}

	return status, true
}

// SetJobStatus records the latest status for a job. Failures are logged
// and swallowed; the cache is advisory.
func (c *JobStatusCache) SetJobStatus(ctx context.Context, jobID string, status domain.JobStatus) {
	key := fmt.Sprintf(redis.KeyJobStatus, jobID)

	if err := c.client.GetRedis().Set(ctx, key, string(status), redis.TTLJobStatus).Err(); err != nil {
		c.logger.Warn("Status cache write failed",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
	}
}
