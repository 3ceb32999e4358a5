// Package resilience groups the fault tolerance helpers used by the Foodgram
// API client.
//
// The package supports:
//   - Circuit breakers around the API transport (circuitbreaker)
//   - Retry logic with exponential backoff, jitter and Retry-After hints (retry)
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FoodgramAPIConfig())
//	httpClient := &http.Client{Transport: circuitbreaker.NewTransport(nil, cb)}
//
//	err := retry.WithBackoff(ctx, retry.RecipeListConfig(), func() error {
//	    return fetchPage()
//	})
package resilience
