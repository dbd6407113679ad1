package ports

import (
	"context"
	"time"
)

// ProjectSummaryData is the cached list view of a project.
type ProjectSummaryData struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	OwnerID   string     `json:"ownerId"`
	TaskCount int        `json:"taskCount"`
	Completed int        `json:"completed"`
	Progress  float64    `json:"progress"`
}

// ProjectSummaryCachePort caches per-project summaries. A miss returns (nil, nil).
type ProjectSummaryCachePort interface {
	Get(ctx context.Context, projectID string) (*ProjectSummaryData, error)
	Set(ctx context.Context, summary *ProjectSummaryData) error
	Invalidate(ctx context.Context, projectIDs ...string) error
}

// DistributedLockPort lets one instance among many claim a job run.
type DistributedLockPort interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}
