package ratelimiter

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SeakMengs/AutoSig/internal/config"
)

func newTestLimiter(limit int, frame time.Duration, enabled bool) (*FixedWindowRateLimiter, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: limit,
		TimeFrame:            frame,
		Enabled:              enabled,
	}, nil)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestFixedWindowRateLimiter(t *testing.T) {
	rl, now := newTestLimiter(3, time.Minute, true)

	for i := 0; i < 3; i++ {
		if ok, _ := rl.Allow("1.1.1.1"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, retryAfter := rl.Allow("1.1.1.1")
	if ok {
		t.Fatal("request above the limit should be blocked")
	}
	if retryAfter != time.Minute {
		t.Errorf("expected retry after 1m, got %v", retryAfter)
	}

	if ok, _ := rl.Allow("2.2.2.2"); !ok {
		t.Error("other clients have their own window")
	}

	*now = now.Add(30 * time.Second)
	if _, retryAfter := rl.Allow("1.1.1.1"); retryAfter != 30*time.Second {
		t.Errorf("expected retry after 30s, got %v", retryAfter)
	}

	*now = now.Add(30 * time.Second)
	if ok, _ := rl.Allow("1.1.1.1"); !ok {
		t.Error("window should reset after the time frame")
	}
}

func TestFixedWindowRateLimiterSweep(t *testing.T) {
	rl, now := newTestLimiter(1, time.Second, true)

	for i := 0; i < 10; i++ {
		rl.Allow(fmt.Sprintf("client-%d", i))
	}
	*now = now.Add(2 * time.Second)
	rl.Allow("late")

	if len(rl.clients) != 1 {
		t.Errorf("expected expired windows to be dropped, got %d clients", len(rl.clients))
	}
}

func TestFixedWindowRateLimiterSweepOncePerFrame(t *testing.T) {
	rl, now := newTestLimiter(1, time.Minute, true)
	start := *now

	steps := []struct {
		client   string
		after    time.Duration
		expected int
	}{
		{client: "a", after: 0, expected: 1},
		{client: "b", after: 30 * time.Second, expected: 2},
		// a expired, first sweep of the new frame
		{client: "c", after: 61 * time.Second, expected: 2},
		// b expired too, but the frame was already swept
		{client: "d", after: 95 * time.Second, expected: 3},
		{client: "e", after: 122 * time.Second, expected: 2},
	}

	for _, step := range steps {
		*now = start.Add(step.after)
		rl.Allow(step.client)
		if len(rl.clients) != step.expected {
			t.Errorf("after %s at %v: expected %d clients, got %d", step.client, step.after, step.expected, len(rl.clients))
		}
	}
}

func TestFixedWindowRateLimiterDisabled(t *testing.T) {
	rl, _ := newTestLimiter(0, time.Minute, false)

	for i := 0; i < 100; i++ {
		if ok, _ := rl.Allow("1.1.1.1"); !ok {
			t.Fatal("disabled limiter should allow everything")
		}
	}
}

func TestFixedWindowRateLimiterConcurrent(t *testing.T) {
	rl, _ := newTestLimiter(50, time.Minute, true)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := rl.Allow("1.1.1.1"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("expected exactly 50 allowed requests, got %d", allowed)
	}
}
