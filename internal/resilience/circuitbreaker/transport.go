package circuitbreaker

import (
	"fmt"
	"net/http"
)

// Transport is an http.RoundTripper guarded by a circuit breaker.
// Transport errors and 5xx responses count as failures. 4xx responses are
// the caller's problem and count as successes.
type Transport struct {
	cb   *CircuitBreaker
	base http.RoundTripper
}

// NewTransport wraps base with cb. A nil base means http.DefaultTransport.
func NewTransport(base http.RoundTripper, cb *CircuitBreaker) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{cb: cb, base: base}
}

// serverFailure carries a 5xx response through the breaker so it is counted
// as a failure while the caller still receives the response.
type serverFailure struct {
	resp *http.Response
}

func (e *serverFailure) Error() string {
	return fmt.Sprintf("server responded %d", e.resp.StatusCode)
}

// RoundTrip implements http.RoundTripper.
// If the circuit is open, it returns gobreaker.ErrOpenState without sending the request.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	result, err := t.cb.Execute(func() (interface{}, error) {
		resp, err := t.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return nil, &serverFailure{resp: resp}
		}
		return resp, nil
	})

	if sf, ok := err.(*serverFailure); ok {
		return sf.resp, nil
	}
	if err != nil {
		return nil, err
	}

	return result.(*http.Response), nil
}

// CircuitBreaker returns the underlying circuit breaker.
func (t *Transport) CircuitBreaker() *CircuitBreaker {
	return t.cb
}
