// Package locationforecast is a client for the MET Norway Locationforecast
// 2.0 "complete" endpoint, the point-forecast data behind Yr.no.
//
// The origin's terms of use require callers to identify themselves and to
// respect response freshness. The client enforces freshness in two layers:
// a response fetched with a prior one attached is returned as-is until its
// Expires deadline passes, and after that the prior body is revalidated
// with a conditional request so an unchanged document is never
// re-transferred. Rate limiting and concurrency caps are not built in;
// compose the decorators from the limit subpackage around a Client for
// that.
package locationforecast

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the fixed origin endpoint for complete forecasts.
const DefaultBaseURL = "https://api.met.no/weatherapi/locationforecast/2.0/complete"

// Fetcher is the single-call abstraction over a forecast fetch. Client
// implements it, and generic middleware (rate limiters, concurrency caps,
// circuit breakers) wraps an inner Fetcher without the client knowing.
type Fetcher interface {
	Fetch(ctx context.Context, params Params) (*Response, error)
}

// Client fetches forecasts from the origin. It holds no mutable state and
// is safe for concurrent use; each call is independent.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, typically to set a
// timeout or a custom transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at a different endpoint. Used by tests to
// target a local server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// NewClient creates a Client that sends userAgent as the User-Agent header
// on every request. The origin rejects or deprioritizes unidentified
// clients, so the string must name the application and a contact, e.g.
// "acme-weather/1.0 ops@acme.example".
func NewClient(userAgent string, opts ...Option) (*Client, error) {
	if userAgent == "" {
		return nil, &ParamError{Field: "userAgent", Reason: "identification string must not be empty"}
	}

	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
		userAgent:  userAgent,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get fetches the forecast for the given coordinates.
func (c *Client) Get(ctx context.Context, lat, lon float64) (*Response, error) {
	p, err := NewParams(lat, lon)
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx, p)
}

// GetWithAltitude fetches the forecast for the given coordinates and
// altitude in meters.
func (c *Client) GetWithAltitude(ctx context.Context, lat, lon float64, alt int) (*Response, error) {
	p, err := NewParamsWithAltitude(lat, lon, alt)
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx, p)
}

// Fetch returns a forecast response for params. If params carry a last
// response that has not expired yet, that response is returned unchanged
// without any network I/O. Otherwise a conditional request is made: the
// origin either confirms the prior body is current (304, body reused) or
// sends a new one (200). Success is atomic; on any error no response is
// produced.
func (c *Client) Fetch(ctx context.Context, params Params) (*Response, error) {
	if last := params.LastResponse(); last != nil && last.ExpiresAt().After(c.now()) {
		return last, nil
	}
	return c.fetchFromOrigin(ctx, params)
}

func (c *Client) fetchFromOrigin(ctx context.Context, params Params) (*Response, error) {
	req, err := c.buildRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return handleOK(resp)
	case http.StatusNotModified:
		return handleNotModified(params, resp)
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp)}
	}
}

func (c *Client) buildRequest(ctx context.Context, params Params) (*http.Request, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(params.Lat(), 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(params.Lon(), 'f', -1, 64))
	if alt, ok := params.Altitude(); ok {
		values.Set("altitude", strconv.Itoa(alt))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	if last := params.LastResponse(); last != nil {
		// Echoed verbatim; the origin issued it in exactly the format
		// it expects back.
		req.Header.Set("If-Modified-Since", last.LastModified())
	}

	return req, nil
}

// extractCacheHeaders reads the two headers every successful exchange must
// carry: the freshness deadline and the revalidation token.
func extractCacheHeaders(resp *http.Response) (time.Time, string, error) {
	expires := resp.Header.Get("Expires")
	if expires == "" {
		return time.Time{}, "", &MalformedResponseError{Reason: "missing Expires header"}
	}
	expiresAt, err := http.ParseTime(expires)
	if err != nil {
		return time.Time{}, "", &MalformedResponseError{Reason: "unparsable Expires header", Err: err}
	}

	lastModified := resp.Header.Get("Last-Modified")
	if lastModified == "" {
		return time.Time{}, "", &MalformedResponseError{Reason: "missing Last-Modified header"}
	}

	return expiresAt, lastModified, nil
}

func handleOK(resp *http.Response) (*Response, error) {
	expiresAt, lastModified, err := extractCacheHeaders(resp)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return newResponse(expiresAt, lastModified, string(raw)), nil
}

func handleNotModified(params Params, resp *http.Response) (*Response, error) {
	expiresAt, lastModified, err := extractCacheHeaders(resp)
	if err != nil {
		return nil, err
	}

	// A 304 can only occur as an answer to a conditional request, which
	// is only sent when a last response exists.
	last := params.LastResponse()
	if last == nil {
		return nil, &MalformedResponseError{Reason: "304 received without a prior response"}
	}

	return newResponse(expiresAt, lastModified, last.Raw()), nil
}

// readErrorMessage captures a bounded amount of the error body for
// diagnostics.
func readErrorMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil || len(raw) == 0 {
		return resp.Status
	}
	return string(raw)
}
