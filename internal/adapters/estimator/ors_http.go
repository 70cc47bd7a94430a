package estimator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"ride-match-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"
)

const (
	maxResponseBytes = 1 << 20
	// maxRetryAfter caps how long a Retry-After header may stall a posting request.
	maxRetryAfter = 5 * time.Second
)

// statusError is a non-2xx answer from an OpenRouteService endpoint.
type statusError struct {
	Op         string
	Code       int
	Body       string
	RetryAfter time.Duration
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ors %s: status %d: %s", e.Op, e.Code, e.Body)
}

// orsCall describes one logical ORS request; the http.Request is rebuilt per attempt.
type orsCall struct {
	op       string
	method   string
	endpoint string
	query    url.Values
	payload  []byte
}

func (o *ORSEstimator) newRequest(ctx context.Context, c orsCall) (*http.Request, error) {
	var body io.Reader
	if c.payload != nil {
		body = bytes.NewReader(c.payload)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", c.op, err)
	}
	if len(c.query) > 0 {
		req.URL.RawQuery = c.query.Encode()
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")
	if c.payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := obs.RequestID(ctx); id != "-" {
		req.Header.Set("X-Request-ID", id)
	}

	return req, nil
}

// roundTrip sends req and returns the response body, or a *statusError for 4xx/5xx.
func (o *ORSEstimator) roundTrip(op string, req *http.Request) ([]byte, error) {
	resp, err := o.session.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode >= 400 {
		return nil, &statusError{
			Op:         op,
			Code:       resp.StatusCode,
			Body:       strings.TrimSpace(string(b[:min(len(b), 512)])),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	return b, nil
}

// call performs c, retrying transient failures (network errors, 429 and 5xx) with
// exponential backoff. Every failed attempt is logged with the caller's request id.
func (o *ORSEstimator) call(ctx context.Context, c orsCall) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := o.newRequest(ctx, c)
		if err != nil {
			return nil, err
		}

		body, err := o.roundTrip(c.op, req)
		if err == nil {
			return body, nil
		}
		lastErr = err

		retry := retryable(err) && attempt < o.maxAttempts
		log.Printf("req_id=%s op=ors.%s attempt=%d/%d retry=%t err=%v",
			obs.RequestID(ctx), c.op, attempt, o.maxAttempts, retry, err)
		if !retry {
			return nil, lastErr
		}

		timer := time.NewTimer(o.retryDelay(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

// retryDelay doubles the base backoff per attempt; a Retry-After hint wins when
// longer, up to maxRetryAfter.
func (o *ORSEstimator) retryDelay(attempt int, err error) time.Duration {
	delay := o.backoff << (attempt - 1)

	var se *statusError
	if errors.As(err, &se) && se.RetryAfter > delay {
		delay = min(se.RetryAfter, maxRetryAfter)
	}
	return delay
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// parseRetryAfter understands the delay-seconds form only.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
