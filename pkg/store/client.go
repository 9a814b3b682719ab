// Package store talks to the load-test service and keeps the authoritative report list
// together with the outcome of job actions.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/dkoosis/reportdash/pkg/report"
)

// Defaults for Options.
const (
	DefaultTimeout      = 15 * time.Second
	DefaultRetryMax     = 2
	DefaultReportsLimit = 100
	requestIDHeader     = "x-request-id"
	maxErrorBody        = 64 * 1024
)

// ErrNotFound is wrapped by APIError for 404 responses.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx answer from the service.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: http %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (http %d)", e.Op, e.Message, e.StatusCode)
}

// Unwrap maps 404 to ErrNotFound.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Options configures a Client.
type Options struct {
	BaseURL      string
	Token        string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	ReportsLimit int
	Logger       zerolog.Logger
}

// Client is a thin JSON client for the service's REST API. Reads are retried with
// backoff; writes are sent once because creating a job is not idempotent.
type Client struct {
	base   *url.URL
	token  string
	limit  int
	reads  *retryablehttp.Client
	writes *retryablehttp.Client
	log    zerolog.Logger
}

// NewClient validates opts and builds a client.
func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", opts.BaseURL)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryMax < 0 {
		opts.RetryMax = 0
	}
	if opts.ReportsLimit <= 0 {
		opts.ReportsLimit = DefaultReportsLimit
	}
	return &Client{
		base:   base,
		token:  opts.Token,
		limit:  opts.ReportsLimit,
		reads:  newHTTPClient(opts, opts.RetryMax),
		writes: newHTTPClient(opts, 0),
		log:    opts.Logger,
	}, nil
}

func newHTTPClient(opts Options, retryMax int) *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	rc.HTTPClient.Timeout = opts.Timeout
	rc.Logger = leveledLogger{log: opts.Logger}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return rc
}

// LastReports fetches the most recent reports across all tests.
func (c *Client) LastReports(ctx context.Context) ([]report.Report, error) {
	var out []report.Report
	q := url.Values{"limit": {strconv.Itoa(c.limit)}}
	if err := c.do(ctx, c.reads, "get last reports", http.MethodGet, "/v1/tests/last_reports", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Tests fetches all test definitions.
func (c *Client) Tests(ctx context.Context) ([]report.Test, error) {
	var out []report.Test
	if err := c.do(ctx, c.reads, "get tests", http.MethodGet, "/v1/tests", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Report fetches one report of a test.
func (c *Client) Report(ctx context.Context, testID, reportID string) (report.Report, error) {
	var out report.Report
	path := "/v1/tests/" + url.PathEscape(testID) + "/reports/" + url.PathEscape(reportID)
	if err := c.do(ctx, c.reads, "get report", http.MethodGet, path, nil, nil, &out); err != nil {
		return report.Report{}, err
	}
	return out, nil
}

// Job fetches a job definition.
func (c *Client) Job(ctx context.Context, jobID string) (report.Job, error) {
	var out report.Job
	if err := c.do(ctx, c.reads, "get job", http.MethodGet, "/v1/jobs/"+url.PathEscape(jobID), nil, nil, &out); err != nil {
		return report.Job{}, err
	}
	return out, nil
}

// CreateJob creates a job and returns it with its id.
func (c *Client) CreateJob(ctx context.Context, req report.JobRequest) (report.Job, error) {
	var out report.Job
	if err := c.do(ctx, c.writes, "create job", http.MethodPost, "/v1/jobs", nil, req, &out); err != nil {
		return report.Job{}, err
	}
	return out, nil
}

// StopRun aborts the run reportID of job jobID.
func (c *Client) StopRun(ctx context.Context, jobID, reportID string) error {
	path := "/v1/jobs/" + url.PathEscape(jobID) + "/runs/" + url.PathEscape(reportID) + "/stop"
	return c.do(ctx, c.writes, "stop job", http.MethodPost, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, hc *retryablehttp.Client, op, method, path string, query url.Values, body, out any) error {
	u := *c.base
	raw := c.base.EscapedPath() + path
	unescaped, err := url.PathUnescape(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	u.Path, u.RawPath = unescaped, raw
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var payload any
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		payload = data
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	res, err := hc.Do(req)
	if err != nil {
		c.log.Debug().Str("op", op).Str("request_id", reqID).Err(err).Msg("request failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()
	c.log.Debug().
		Str("op", op).
		Str("request_id", reqID).
		Int("status", res.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request done")

	if res.StatusCode/100 != 2 {
		return &APIError{Op: op, StatusCode: res.StatusCode, Message: errorMessage(res.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// errorMessage extracts {"message": "..."} from an error body, falling back to the
// trimmed text.
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(bytes.ToValidUTF8(data, nil)))
}

// leveledLogger routes retryablehttp's logging into zerolog.
type leveledLogger struct {
	log zerolog.Logger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.log.Error().Fields(kv).Msg(msg) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.log.Debug().Fields(kv).Msg(msg) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.log.Trace().Fields(kv).Msg(msg) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.log.Warn().Fields(kv).Msg(msg) }

var _ retryablehttp.LeveledLogger = leveledLogger{}
