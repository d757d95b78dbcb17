// Package resilience groups the fault tolerance helpers used for outbound calls.
//
//   - circuitbreaker: trips after a failure ratio and fails fast while open
//   - retry: exponential backoff with jitter, honoring server Retry-After hints
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.ConfigFor(circuitbreaker.KindHuggingFace, "hf-summarization"))
//	err := retry.WithBackoff(ctx, retry.InferenceConfig(), func() error {
//	    _, err := circuitbreaker.Do(cb, func() (string, error) { return call(ctx) })
//	    return err
//	})
package resilience
