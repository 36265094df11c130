// Package analytics provides the HTTP client of the upstream ticket analytics API.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/domain/entity"
)

// Upstream endpoints, relative to the base URL.
const (
	statsPath      = "/dashboard/stats/"
	breakdownPath  = "/dashboard/level2-breakdown/"
	chartPath      = "/dashboard/chart-data/"
	taxonomiesPath = "/taxonomies/"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4096

// Config holds the upstream connection settings.
type Config struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// UpstreamError is a non-2xx response from the analytics API.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("analytics %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("analytics %s returned status %d", e.Endpoint, e.StatusCode)
}

// UserMessage returns the message the upstream meant for display, if any.
func (e *UpstreamError) UserMessage() string {
	return e.Message
}

// Client implements adapter.AnalyticsClient over HTTP.
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

// NewClient creates a new analytics client.
func NewClient(cfg Config) adapter.AnalyticsClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		http:     &http.Client{Timeout: timeout},
	}
}

// Stats fetches company-wide automation figures.
func (c *Client) Stats(ctx context.Context, params entity.StatsParams) (*entity.DashboardStats, error) {
	query := url.Values{}
	query.Set("days", strconv.Itoa(params.Days))

	var stats entity.DashboardStats
	if err := c.get(ctx, statsPath, query, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Breakdown fetches one page of the category breakdown.
func (c *Client) Breakdown(ctx context.Context, params entity.BreakdownParams) (*entity.BreakdownPage, error) {
	var page entity.BreakdownPage
	if err := c.get(ctx, breakdownPath, BreakdownQuery(params), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Chart fetches the ticket volume trend.
func (c *Client) Chart(ctx context.Context, params entity.ChartParams) (*entity.ChartData, error) {
	query := url.Values{}
	query.Set("period", string(params.Period))

	var data entity.ChartData
	if err := c.get(ctx, chartPath, query, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Taxonomies fetches every known ticket category.
func (c *Client) Taxonomies(ctx context.Context) ([]entity.Taxonomy, error) {
	var taxonomies []entity.Taxonomy
	if err := c.get(ctx, taxonomiesPath, nil, &taxonomies); err != nil {
		return nil, err
	}
	return taxonomies, nil
}

// BreakdownQuery encodes breakdown params. Unset optional params are omitted.
func BreakdownQuery(params entity.BreakdownParams) url.Values {
	query := url.Values{}
	if params.StartDate != nil {
		query.Set("start_date", *params.StartDate)
	}
	if params.EndDate != nil {
		query.Set("end_date", *params.EndDate)
	}
	if params.Days != nil {
		query.Set("days", strconv.Itoa(*params.Days))
	}
	query.Set("group_by", string(params.GroupBy))
	if params.CategoryID != nil {
		query.Set("category_id", *params.CategoryID)
	}
	if params.MinVolume != nil {
		query.Set("min_volume", strconv.Itoa(*params.MinVolume))
	}
	if params.MaxVolume != nil {
		query.Set("max_volume", strconv.Itoa(*params.MaxVolume))
	}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("page_size", strconv.Itoa(params.PageSize))
	return query
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("analytics request failed: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("Analytics request completed",
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &UpstreamError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// errorMessage extracts a display message from a JSON error body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	switch {
	case payload.Error != "":
		return payload.Error
	case payload.Detail != "":
		return payload.Detail
	default:
		return payload.Message
	}
}
