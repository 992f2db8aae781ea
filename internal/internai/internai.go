// Package internai is the HTTP client of the InternAI scoring and generation service.
package internai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spigell/internai/internal/types"
)

const (
	DefaultAPIURL  = "http://localhost:8000"
	defaultTimeout = 60 * time.Second
	userAgent      = "spigell/internai"

	analyzePath = "/v1/analyze"
	samplePath  = "/v1/jobs/sample"
	matchPath   = "/v1/match"
	writePath   = "/v1/write"
	coachPath   = "/v1/coach"
	agentsPath  = "/v1/agents"
)

type Client struct {
	logger     *zap.Logger
	limiter    *rate.Limiter
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger, apiURL string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	return &Client{
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		UserAgent: userAgent,
	}
}

// SetRateLimit paces outgoing requests. A non-positive value disables pacing.
func (c *Client) SetRateLimit(requestsPerSecond float64) {
	if requestsPerSecond <= 0 {
		c.limiter = nil
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}

// SetTimeout overrides the transport timeout. Zero keeps the default.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.HTTPClient.Timeout = d
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeProfile extracts skills and highlights from resume text.
func (c *Client) AnalyzeProfile(ctx context.Context, text string) (*types.Analysis, error) {
	var analysis types.Analysis
	if err := c.postJSON(ctx, analyzePath, analyzeRequest{Text: text}, &analysis); err != nil {
		return nil, err
	}

	return &analysis, nil
}

// SampleJobs returns the sample job set served by the API.
func (c *Client) SampleJobs(ctx context.Context) ([]types.JobItem, error) {
	var jobs []types.JobItem
	if err := c.getJSON(ctx, samplePath, &jobs); err != nil {
		return nil, err
	}

	return jobs, nil
}

// profilePayload is the subset of the profile the service accepts.
type profilePayload struct {
	Name   string   `json:"name,omitempty"`
	Email  string   `json:"email,omitempty"`
	Skills []string `json:"skills"`
}

func newProfilePayload(p types.Profile) profilePayload {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return profilePayload{Name: p.Name, Email: p.Email, Skills: skills}
}

type matchRequest struct {
	Profile profilePayload  `json:"profile"`
	Jobs    []types.JobItem `json:"jobs"`
}

// MatchJobs scores jobs against the profile. The order of the response is kept.
func (c *Client) MatchJobs(ctx context.Context, profile types.Profile, jobs []types.JobItem) ([]types.MatchResult, error) {
	if jobs == nil {
		jobs = []types.JobItem{}
	}

	var matches []types.MatchResult
	if err := c.postJSON(ctx, matchPath, matchRequest{Profile: newProfilePayload(profile), Jobs: jobs}, &matches); err != nil {
		return nil, err
	}

	return matches, nil
}
