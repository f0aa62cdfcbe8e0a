package api

import (
	"sync"
	"testing"
	"time"
)

func TestAttemptLimiterWindow(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter()
	key := "127.0.0.1"
	window := time.Hour
	now := time.Now().UTC()

	limiter.addAttempt(key, now.Add(-2*time.Hour), window)
	if limiter.tooManyRecent(key, now, 1, window) {
		t.Fatal("expected old attempt to be pruned from active window")
	}

	limiter.addAttempt(key, now.Add(-30*time.Minute), window)
	if !limiter.tooManyRecent(key, now, 1, window) {
		t.Fatal("expected one recent attempt to hit limit 1")
	}
	if got := limiter.remaining(key, now, 3, window); got != 2 {
		t.Fatalf("expected 2 remaining attempts, got %d", got)
	}

	if limiter.tooManyRecent(key, now.Add(time.Hour), 1, window) {
		t.Fatal("expected attempts to expire after the window")
	}
	if limiter.tooManyRecent("10.0.0.2", now, 1, window) {
		t.Fatal("expected other clients to be unaffected")
	}
}

func TestAttemptLimiterConcurrentAttempts(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter()
	now := time.Now().UTC()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter.addAttempt("client", now, time.Minute)
		}()
	}
	wg.Wait()

	if got := limiter.remaining("client", now, 60, time.Minute); got != 10 {
		t.Fatalf("expected 10 remaining attempts, got %d", got)
	}
}
