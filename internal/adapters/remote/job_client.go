package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// JobClient implements ports.JobAPI. The backend proxies a public posting
// feed and pages it Spring-style, so the page shape decodes directly into
// entities.JobPage.
type JobClient struct {
	client *Client
}

func NewJobClient(client *Client) *JobClient {
	return &JobClient{client: client}
}

func (c *JobClient) Search(ctx context.Context, filter ports.JobFilter) (*entities.JobPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	if filter.Size > 0 {
		query.Set("size", strconv.Itoa(filter.Size))
	}
	if filter.Sort != "" {
		query.Set("sort", filter.Sort)
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Keyword != "" {
		query.Set("keyword", filter.Keyword)
	}

	var page entities.JobPage
	if err := c.client.getJSON(ctx, "/jobs", query, &page); err != nil {
		return nil, fmt.Errorf("failed to search job postings: %w", err)
	}
	return &page, nil
}
