package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSubmissionTTL = 10 * time.Minute

// SubmissionGuard remembers form submission keys so a resubmitted form is
// processed at most once per TTL window.
// Key format: submission:<scope>:<key>
type SubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmissionGuard wraps client. A non-positive ttl falls back to ten minutes.
func NewSubmissionGuard(client *redis.Client, ttl time.Duration) *SubmissionGuard {
	if ttl <= 0 {
		ttl = defaultSubmissionTTL
	}
	return &SubmissionGuard{client: client, ttl: ttl}
}

// Claim records key under scope and reports whether this is its first use.
func (g *SubmissionGuard) Claim(ctx context.Context, scope, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, submissionKey(scope, key), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("submission claim: %w", err)
	}
	return ok, nil
}

// Release forgets key so the submission can be retried, used when the
// guarded request failed.
func (g *SubmissionGuard) Release(ctx context.Context, scope, key string) error {
	return g.client.Del(ctx, submissionKey(scope, key)).Err()
}

func submissionKey(scope, key string) string {
	return fmt.Sprintf("submission:%s:%s", scope, key)
}
