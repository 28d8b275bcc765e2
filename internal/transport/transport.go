// Package transport performs provider GET requests with rate limiting,
// retries on transient failures, and request metrics.
//
// Provider clients (newsapi, tmdb, social) build URLs and decode bodies;
// everything between "send request" and "have 2xx body" lives here.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/rastogi30/Personalized-Dashboard/internal/metrics"
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned when a provider answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned HTTP %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s returned HTTP %d", e.Provider, e.StatusCode)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Option configures a Requester.
type Option func(*Requester)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client HTTPClient) Option {
	return func(r *Requester) {
		r.client = client
	}
}

// WithRateLimit sets the request rate allowed towards the provider.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(r *Requester) {
		r.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithMaxRetries sets how many times a transient failure is retried.
func WithMaxRetries(n uint64) Option {
	return func(r *Requester) {
		r.maxRetries = n
	}
}

// WithBackOff replaces the retry schedule factory.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(r *Requester) {
		r.newBackOff = newBackOff
	}
}

// Requester issues GET requests on behalf of one provider.
type Requester struct {
	provider   string
	client     HTTPClient
	limiter    *rate.Limiter
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

// New creates a Requester for the named provider.
func New(provider string, opts ...Option) *Requester {
	r := &Requester{
		provider:   provider,
		client:     &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
		maxRetries: 2,
		newBackOff: defaultBackOff,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.Multiplier = 2
	b.MaxElapsedTime = 10 * time.Second
	return b
}

// Provider returns the provider name used in errors and metrics.
func (r *Requester) Provider() string {
	return r.provider
}

// Get fetches url and returns the body of a 2xx response.
// Transport errors, 429 and 5xx are retried; other statuses fail immediately.
func (r *Requester) Get(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()

	b := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), r.maxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		log.WithFields(log.Fields{
			"provider": r.provider,
			"wait":     wait,
			"error":    err,
		}).Debug("Retrying provider request")
	}

	body, err := backoff.RetryNotifyWithData(func() ([]byte, error) {
		return r.attempt(ctx, url)
	}, b, notify)

	metrics.RecordProviderRequest(r.provider, outcome(err), time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (r *Requester) attempt(ctx context.Context, url string) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("rate limiter: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, fmt.Errorf("%s request failed: %w", r.provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", r.provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{
			Provider:   r.provider,
			StatusCode: resp.StatusCode,
			Message:    providerMessage(body),
		}
		if statusErr.Temporary() {
			return nil, statusErr
		}
		return nil, backoff.Permanent(statusErr)
	}

	return body, nil
}

// providerMessage pulls a human-readable message out of an error body.
// NewsAPI uses "message", TMDB uses "status_message".
func providerMessage(body []byte) string {
	var payload struct {
		Message       string `json:"message"`
		StatusMessage string `json:"status_message"`
		Error         string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch {
	case payload.Message != "":
		return payload.Message
	case payload.StatusMessage != "":
		return payload.StatusMessage
	default:
		return payload.Error
	}
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("http_%d", statusErr.StatusCode)
	}
	return "error"
}
