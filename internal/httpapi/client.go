// Package httpapi implements the HTTP response model, the conditional-
// caching client, the link-header paginator and the exponential backoff
// and throttle wrappers around it.
package httpapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/forgectl/forgectl/internal/cache"
	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/metrics"
	"github.com/forgectl/forgectl/internal/xtime"
)

// RESTAPIMaxPages is the hard safety ceiling on pages pulled for any
// single operation, regardless of configuration.
const RESTAPIMaxPages = 10

// DefaultRateLimitThreshold is used when config does not set
// rate_limit_remaining_threshold.
const DefaultRateLimitThreshold = 10

// defaultPerMinuteBudget is the internal rate counter's budget for
// self-hosted forges that emit no rate-limit headers at all.
const defaultPerMinuteBudget = 80

// MaxPagesLookup returns the configured max-pages cap for an operation
// (max_pages_api_<op>), already clamped to RESTAPIMaxPages by the config
// resolver.
type MaxPagesLookup func(cache.ApiOperation) int

// Client executes a single Request against a forge, enforcing cache
// semantics on GET and rate-limit bookkeeping on every call. One Client
// is shared (by reference) across an invocation, including across the
// parallel command executor's worker goroutines - hence the mutex
// around the internal rate-limit counter.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	clock    xtime.Clock
	log      *logrus.Entry
	provider string

	threshold  int
	maxPages   MaxPagesLookup

	mu               sync.Mutex
	remainingRequests int
	timeToReset       int64 // unix seconds
}

// NewClient builds a Client for provider (used only as a metrics label).
// It wraps a retryablehttp client with RetryMax=0: connection pooling
// and a request log hook come from retryablehttp, but retry
// policy is owned entirely by the Backoff wrapper. transport, if
// non-nil, replaces the underlying http.RoundTripper - used to inject
// an oauth2.Transport for providers that authenticate that way, rather
// than setting Authorization by hand.
func NewClient(c cache.Cache, threshold int, maxPages MaxPagesLookup, clock xtime.Clock, log *logrus.Entry, provider string, transport http.RoundTripper) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	if transport != nil {
		rc.HTTPClient.Transport = transport
	}
	entry := log.WithField("component", "http-client")
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		entry.WithField("method", req.Method).WithField("url", req.URL.String()).Debug("sending request")
	}
	return &Client{
		http:              rc.StandardClient(),
		cache:             c,
		clock:             clock,
		log:               entry,
		provider:          provider,
		threshold:         threshold,
		maxPages:          maxPages,
		remainingRequests: defaultPerMinuteBudget,
		timeToReset:       clock.Now().Unix() + 60,
	}
}

// APIMaxPages returns the effective page cap for a request: the
// configured per-operation cap, clamped by RESTAPIMaxPages and by any
// request-level override.
func (c *Client) APIMaxPages(req *Request) int {
	limit := RESTAPIMaxPages
	if c.maxPages != nil {
		if op := c.maxPages(req.Operation); op > 0 && op < limit {
			limit = op
		}
	}
	if req.MaxPages != nil && *req.MaxPages < limit {
		limit = *req.MaxPages
	}
	return limit
}

// Run executes req. GET requests are read through the cache; writes
// bypass it entirely.
func (c *Client) Run(req *Request) (*Response, error) {
	if req.Method != MethodGet {
		return c.runWrite(req)
	}
	return c.runGet(req)
}

func (c *Client) runGet(req *Request) (*Response, error) {
	var fallback *Response
	if !req.RefreshCache {
		state, err := c.cache.Get(req.Resource())
		if err != nil {
			return nil, err
		}
		switch state.Freshness {
		case cache.Fresh:
			metrics.CacheHitsTotal.WithLabelValues(c.provider).Inc()
			return &Response{
				Status:           state.Entry.Status,
				Body:             string(state.Entry.Body),
				Headers:          Headers(state.Entry.Headers),
				LocalCacheOrigin: true,
			}, nil
		case cache.Stale:
			metrics.CacheMissesTotal.WithLabelValues(c.provider).Inc()
			fallback = &Response{
				Status:  state.Entry.Status,
				Body:    string(state.Entry.Body),
				Headers: Headers(state.Entry.Headers),
			}
			if etag := fallback.ETag(); etag != "" {
				req.Headers.Set("If-None-Match", etag)
			}
		case cache.None:
			metrics.CacheMissesTotal.WithLabelValues(c.provider).Inc()
		}
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}

	if resp.Status == http.StatusNotModified && fallback != nil {
		if err := c.cache.Update(req.Resource(), cache.Entry{Headers: cache.Headers(resp.Headers)}, cache.UpdateHeaders); err != nil {
			return nil, err
		}
		fallback.LocalCacheOrigin = false
		return fallback, nil
	}

	if err := c.enforceRateLimit(resp); err != nil {
		return nil, err
	}
	if err := c.cache.Set(req.Resource(), cache.Entry{Status: resp.Status, Body: []byte(resp.Body), Headers: cache.Headers(resp.Headers)}); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) runWrite(req *Request) (*Response, error) {
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if err := c.enforceRateLimit(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) send(req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		b, ok := req.Body.([]byte)
		if !ok {
			return nil, &errorsx.ApplicationError{Msg: "request body must be pre-encoded []byte by the query layer"}
		}
		body = strings.NewReader(string(b))
	}
	httpReq, err := http.NewRequest(string(req.Method), req.URL, body)
	if err != nil {
		return nil, &errorsx.HTTPTransportError{Cause: err}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &errorsx.HTTPTransportError{Cause: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &errorsx.HTTPTransportError{Cause: err}
	}

	headers := Headers{}
	for k := range httpResp.Header {
		headers.Set(k, httpResp.Header.Get(k))
	}
	metrics.HTTPRequestsTotal.WithLabelValues(c.provider, string(req.Method), strconv.Itoa(httpResp.StatusCode)).Inc()
	return &Response{Status: httpResp.StatusCode, Body: string(raw), Headers: headers}, nil
}

// enforceRateLimit implements the two-track policy: header-driven when
// the response carries rate-limit headers, else the mutex-guarded
// internal counter.
func (c *Client) enforceRateLimit(resp *Response) error {
	rl := resp.RateLimitHeader()
	if rl.Present {
		if rl.Remaining <= c.threshold {
			metrics.RateLimitExceededTotal.WithLabelValues(c.provider).Inc()
			return &errorsx.RateLimitExceededError{
				Header: errorsx.RateLimitHeader{Remaining: rl.Remaining, Reset: rl.Reset, RetryAfter: rl.RetryAfter},
				Now:    c.clock.Now().Unix(),
			}
		}
		return nil
	}
	return c.enforceInternalCounter()
}

func (c *Client) enforceInternalCounter() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock.Now().Unix()
	if now > c.timeToReset {
		c.remainingRequests = defaultPerMinuteBudget
		c.timeToReset = now + 60
	}
	if c.remainingRequests <= c.threshold {
		metrics.RateLimitExceededTotal.WithLabelValues(c.provider).Inc()
		return &errorsx.RateLimitExceededError{
			Header: errorsx.RateLimitHeader{Remaining: c.remainingRequests, Reset: c.timeToReset},
			Now:    now,
		}
	}
	c.remainingRequests--
	return nil
}

// TranslateStatus maps a write response whose status an adapter does not
// accept into a RemoteServerError, body echoed for diagnostics.
func TranslateStatus(resp *Response) error {
	return &errorsx.RemoteServerError{Status: resp.Status, Body: resp.Body}
}
