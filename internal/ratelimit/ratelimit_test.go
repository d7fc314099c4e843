package ratelimit

import (
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial calls",
			rps:      1,
			burst:    3,
			calls:    5,
			wantPass: 3,
		},
		{
			name:     "single token",
			rps:      0.1,
			burst:    1,
			calls:    4,
			wantPass: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			krl := New(tt.rps, tt.burst)
			defer krl.Stop()

			passed := 0
			for range tt.calls {
				if krl.Allow("client") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("passed = %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	krl := New(0.1, 1)
	defer krl.Stop()

	if !krl.Allow("a") {
		t.Error("first call for key a should pass")
	}
	if krl.Allow("a") {
		t.Error("second call for key a should be limited")
	}
	if !krl.Allow("b") {
		t.Error("key b has its own bucket and should pass")
	}
}

func TestKeyedRateLimiter_Refill(t *testing.T) {
	krl := New(50, 1)
	defer krl.Stop()

	if !krl.Allow("client") {
		t.Fatal("first call should pass")
	}
	if krl.Allow("client") {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(40 * time.Millisecond) // 50 rps refills one token in 20ms

	if !krl.Allow("client") {
		t.Error("token should have refilled")
	}
}

func TestKeyedRateLimiter_StopIsIdempotent(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	krl.Stop()
}
