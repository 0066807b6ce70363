package utils

import (
  "context"
  "fmt"
  "net/http"
  "testing"
  "time"
)

type statusErr struct{ code int }

func (e statusErr) Error() string       { return fmt.Sprintf("status %d", e.code) }
func (e statusErr) HTTPStatusCode() int { return e.code }

func TestIsRetryableHTTPStatus(t *testing.T) {
  for _, code := range []int{408, 429, 500, 502, 599} {
    if !IsRetryableHTTPStatus(code) {
      t.Fatalf("expected %d to be retryable", code)
    }
  }
  for _, code := range []int{200, 301, 400, 401, 404, 422} {
    if IsRetryableHTTPStatus(code) {
      t.Fatalf("expected %d to not be retryable", code)
    }
  }
}

func TestIsRetryableError(t *testing.T) {
  if IsRetryableError(nil) {
    t.Fatalf("nil error must not be retryable")
  }
  if !IsRetryableError(context.DeadlineExceeded) {
    t.Fatalf("deadline exceeded should be retryable")
  }
  if !IsRetryableError(fmt.Errorf("wrapped: %w", statusErr{code: 503})) {
    t.Fatalf("wrapped 503 should be retryable")
  }
  if IsRetryableError(statusErr{code: 404}) {
    t.Fatalf("404 should not be retryable")
  }
  if IsRetryableError(fmt.Errorf("plain failure")) {
    t.Fatalf("plain error should not be retryable")
  }
}

func TestRetryAfterDuration(t *testing.T) {
  if got := RetryAfterDuration(nil, 2*time.Second, 10*time.Second); got != 2*time.Second {
    t.Fatalf("nil response: got %v", got)
  }

  resp := &http.Response{Header: http.Header{}}
  resp.Header.Set("Retry-After", "3")
  if got := RetryAfterDuration(resp, time.Second, 10*time.Second); got != 3*time.Second {
    t.Fatalf("Retry-After header: got %v", got)
  }

  resp.Header.Set("Retry-After", "120")
  if got := RetryAfterDuration(resp, time.Second, 10*time.Second); got != 10*time.Second {
    t.Fatalf("cap: got %v", got)
  }

  resp.Header.Set("Retry-After", "garbage")
  if got := RetryAfterDuration(resp, 4*time.Second, 10*time.Second); got != 4*time.Second {
    t.Fatalf("bad header falls back: got %v", got)
  }
}

func TestJitterSleep(t *testing.T) {
  if got := JitterSleep(0); got != 0 {
    t.Fatalf("zero base: got %v", got)
  }
  base := time.Second
  for i := 0; i < 50; i++ {
    got := JitterSleep(base)
    if got < 800*time.Millisecond || got > 1200*time.Millisecond {
      t.Fatalf("jitter out of range: %v", got)
    }
  }
}
