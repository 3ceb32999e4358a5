package foodgramapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"foodgram-client/internal/domain/entity"
	"foodgram-client/internal/resilience/retry"
)

// ErrCircuitOpen is returned when the API circuit breaker rejects a call.
var ErrCircuitOpen = errors.New("foodgram api circuit open")

// defaultRetryAfter is used when a 429 carries no usable Retry-After header.
const defaultRetryAfter = 5 * time.Second

// ClientError represents a 4xx response other than 429.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("foodgram api: %d %s", e.StatusCode, e.Message)
}

// Retryable reports true only for 408 Request Timeout.
func (e *ClientError) Retryable() bool { return retry.RetryableStatus(e.StatusCode) }

// Unwrap maps 404 onto entity.ErrNotFound.
func (e *ClientError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return entity.ErrNotFound
	}
	return nil
}

// ServerError represents a 5xx response.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("foodgram api: %d %s", e.StatusCode, e.Message)
}

// Retryable reports true.
func (e *ServerError) Retryable() bool { return retry.RetryableStatus(e.StatusCode) }

// RateLimitError represents a 429 response.
type RateLimitError struct {
	Delay   time.Duration
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("foodgram api: %s (retry after %v)", e.Message, e.Delay)
	}
	return fmt.Sprintf("foodgram api: rate limit exceeded (retry after %v)", e.Delay)
}

// Retryable reports true.
func (e *RateLimitError) Retryable() bool { return true }

// RetryAfter returns the server-provided wait.
func (e *RateLimitError) RetryAfter() time.Duration { return e.Delay }

// errorBody covers both error shapes the backend produces.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// errorMessage extracts a human readable message from an error response body.
func errorMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Error != "" {
			return eb.Error
		}
		if eb.Detail != "" {
			return eb.Detail
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
		return text
	}
	return http.StatusText(status)
}

// errorFromResponse maps a non-2xx response onto the error taxonomy.
func errorFromResponse(resp *http.Response, body []byte) error {
	msg := errorMessage(resp.StatusCode, body)
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{Delay: parseRetryAfter(resp.Header.Get("Retry-After")), Message: msg}
	case resp.StatusCode >= 500:
		return &ServerError{StatusCode: resp.StatusCode, Message: msg}
	default:
		return &ClientError{StatusCode: resp.StatusCode, Message: msg}
	}
}

// parseRetryAfter reads a Retry-After header in seconds.
func parseRetryAfter(header string) time.Duration {
	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return defaultRetryAfter
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, entity.ErrNotFound)
}

// unappliedMutation wraps a failed POST or DELETE that may have reached the
// server. Retrying it could repeat a change that was already committed.
type unappliedMutation struct {
	err error
}

func (e *unappliedMutation) Error() string   { return e.err.Error() }
func (e *unappliedMutation) Unwrap() error   { return e.err }
func (e *unappliedMutation) Retryable() bool { return false }

// mutationError leaves err retryable only when the server certainly did not
// apply the request: it was rate limited or the connection was refused.
func mutationError(err error) error {
	if err == nil {
		return nil
	}
	var rl *RateLimitError
	if errors.As(err, &rl) || errors.Is(err, syscall.ECONNREFUSED) {
		return err
	}
	return &unappliedMutation{err: err}
}
