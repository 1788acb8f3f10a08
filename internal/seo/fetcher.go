package seo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Bahjat/seo-insight/internal/platform/errs"
)

// FetchResult is what a successful page fetch hands to the parser.
type FetchResult struct {
	StatusCode  int
	Body        []byte
	ContentType string
	// Elapsed runs from sending the request until the response headers arrived.
	Elapsed time.Duration
}

// ElapsedSeconds returns Elapsed as fractional seconds.
func (r *FetchResult) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// Fetcher retrieves the raw page. Implementations return *errs.AppError with
// Kind Network or Fetch on failure.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// HTTPClient implements Fetcher with a single GET and no retries.
type HTTPClient struct {
	client *http.Client
}

const (
	// Same redirect budget as net/http's default policy.
	maxRedirects = 10
	// Limit response body to 10 MB to prevent memory exhaustion from
	// extremely large or infinite responses.
	maxResponseBody = 10 << 20

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")
)

// NewHTTPClient returns a Fetcher backed by an http.Client with the given
// overall timeout. Unless allowPrivate is set, the dialer refuses private and
// reserved IP ranges. The transport is instrumented with otelhttp.
func NewHTTPClient(timeout time.Duration, allowPrivate bool) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: otelhttp.NewTransport(&http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         newDialer(allowPrivate).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			}),
			CheckRedirect: safeRedirectPolicy,
		},
	}
}

// safeRedirectPolicy validates redirect targets and limits the redirect chain length.
func safeRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", errBlockedRedirect, req.URL.Scheme)
	}
	return nil
}

// Fetch issues one GET against targetURL and reads the whole body.
func (c *HTTPClient) Fetch(ctx context.Context, targetURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.Validation,
			Message: "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com).",
			Cause:   err,
		}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	elapsed := time.Since(start)
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errs.AppError{
			Kind:           errs.Fetch,
			UpstreamStatus: resp.StatusCode,
			Message:        fmt.Sprintf("The provided URL returned status %d.", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, networkError(err)
	}

	return &FetchResult{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		Elapsed:     elapsed,
	}, nil
}

func networkError(err error) *errs.AppError {
	msg := "The provided URL could not be reached. Check the address."

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		msg = "The provided URL did not respond in time."
	}
	if addr, ok := blockedAddress(err); ok {
		msg = fmt.Sprintf("The provided URL resolves to %s, which is not a public network address.", addr)
	}

	return &errs.AppError{
		Kind:    errs.Network,
		Message: msg,
		Cause:   err,
	}
}
