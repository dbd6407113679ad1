package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"taskboard/domain/ports"
)

const (
	summaryKeyPrefix  = "taskboard:project_summary:"
	defaultSummaryTTL = 10 * time.Minute
)

// ProjectSummaryCache stores project list summaries as JSON.
type ProjectSummaryCache struct {
	client *Client
	ttl    time.Duration
}

func NewProjectSummaryCache(client *Client, ttl time.Duration) ports.ProjectSummaryCachePort {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &ProjectSummaryCache{client: client, ttl: ttl}
}

func summaryKey(projectID string) string {
	return summaryKeyPrefix + projectID
}

func (c *ProjectSummaryCache) Get(ctx context.Context, projectID string) (*ports.ProjectSummaryData, error) {
	var summary ports.ProjectSummaryData
	if err := c.client.GetJSON(ctx, summaryKey(projectID), &summary); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (c *ProjectSummaryCache) Set(ctx context.Context, summary *ports.ProjectSummaryData) error {
	return c.client.SetJSON(ctx, summaryKey(summary.ID), summary, c.ttl)
}

func (c *ProjectSummaryCache) Invalidate(ctx context.Context, projectIDs ...string) error {
	if len(projectIDs) == 0 {
		return nil
	}
	keys := make([]string, len(projectIDs))
	for i, id := range projectIDs {
		keys[i] = summaryKey(id)
	}
	return c.client.Del(ctx, keys...)
}

// Flush drops every cached summary.
func (c *ProjectSummaryCache) Flush(ctx context.Context) (int64, error) {
	return c.client.ScanAndDelete(ctx, summaryKeyPrefix+"*")
}
