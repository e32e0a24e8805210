package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/apolice/internal/metrics"
	"github.com/five82/apolice/internal/policy"
	"github.com/five82/apolice/internal/query"
)

// Searcher issues policy searches. It is implemented by *Client and can be
// replaced in tests.
type Searcher interface {
	Prepare(params query.Params) Request
	Do(ctx context.Context, req Request) Result
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:3000/api"
	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes = 8 << 20

	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "apolice/0.1"
	searchPath       = "apolices"

	// HeaderRequestSeq carries the sequence number of a search.
	HeaderRequestSeq = "X-Request-Seq"
	// HeaderRequestID carries the unique id of a search.
	HeaderRequestID = "X-Request-ID"
)

// Request is one prepared search. Seq increases with every Prepare call and
// decides which response is the latest.
type Request struct {
	Seq    uint64
	ID     string
	Params query.Params
}

// Result is the outcome of one search. Err is nil on success and wraps an
// *Error otherwise.
type Result struct {
	Request  Request
	Records  policy.ResultSet
	Err      error
	Duration time.Duration
}

// OK reports whether the search succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Client talks to the policy search API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *zap.Logger
	seq       atomic.Uint64
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger used for dispatch and outcome records.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the API rooted at baseURL. A zero timeout
// uses the default.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Prepare assigns the next sequence number and a request id to params.
func (c *Client) Prepare(params query.Params) Request {
	return Request{
		Seq:    c.seq.Add(1),
		ID:     uuid.New().String(),
		Params: params.Clone(),
	}
}

// Search prepares and performs a search in one step.
func (c *Client) Search(ctx context.Context, params query.Params) Result {
	return c.Do(ctx, c.Prepare(params))
}

// Do performs a prepared search and classifies its outcome.
func (c *Client) Do(ctx context.Context, req Request) Result {
	start := time.Now()
	c.logger.Info("search dispatched",
		zap.Uint64("seq", req.Seq),
		zap.String("request_id", req.ID),
		zap.String("params", req.Params.Summary()),
	)

	records, err := c.fetch(ctx, req)
	res := Result{Request: req, Records: records, Err: err, Duration: time.Since(start)}

	outcome := outcomeLabel(err)
	metrics.SearchRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.SearchRequestDuration.WithLabelValues(outcome).Observe(res.Duration.Seconds())

	fields := []zap.Field{
		zap.Uint64("seq", req.Seq),
		zap.String("request_id", req.ID),
		zap.String("outcome", outcome),
		zap.Duration("duration", res.Duration),
	}
	if err != nil {
		c.logger.Warn("search failed", append(fields, zap.Error(err))...)
	} else {
		c.logger.Info("search completed", append(fields, zap.Int("records", len(records)))...)
	}
	return res
}

func (c *Client) fetch(ctx context.Context, req Request) (policy.ResultSet, error) {
	reqURL := c.searchURL(req.Params)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, networkError(fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(HeaderRequestSeq, strconv.FormatUint(req.Seq, 10))
	httpReq.Header.Set(HeaderRequestID, req.ID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodyBytes))
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, networkError(fmt.Errorf("read body: %w", err))
	}
	if len(body) > MaxBodyBytes {
		return nil, parseError(fmt.Errorf("response exceeds %d bytes", MaxBodyBytes))
	}
	if err := validateShape(body); err != nil {
		return nil, parseError(err)
	}
	set, err := policy.DecodeResultSet(body)
	if err != nil {
		return nil, parseError(err)
	}
	return set, nil
}

func (c *Client) searchURL(params query.Params) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + searchPath
	u.RawPath = ""
	u.RawQuery = params.Encode()
	return u.String()
}

func outcomeLabel(err error) string {
	kind, ok := KindOf(err)
	if !ok {
		if err != nil {
			return metrics.OutcomeNetwork
		}
		return metrics.OutcomeSuccess
	}
	switch kind {
	case KindServer:
		return metrics.OutcomeServer
	case KindParse:
		return metrics.OutcomeParse
	default:
		return metrics.OutcomeNetwork
	}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base_url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
