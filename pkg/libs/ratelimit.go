package libs

import (
	"sync"
	"time"
)

// Rate-limit buckets, one per guarded endpoint category.
const (
	BucketLogin     = "login"
	BucketEnable2FA = "enable_2fa"
	BucketVerify2FA = "verify_2fa"
)

// RatePolicy is the maximum request count allowed inside one fixed window.
type RatePolicy struct {
	MaxRequests int
	Window      time.Duration
}

// DefaultRatePolicies returns the baseline policy table.
func DefaultRatePolicies() map[string]RatePolicy {
	return map[string]RatePolicy{
		BucketLogin:     {MaxRequests: 10, Window: 15 * time.Minute},
		BucketEnable2FA: {MaxRequests: 5, Window: 15 * time.Minute},
		BucketVerify2FA: {MaxRequests: 5, Window: 15 * time.Minute},
	}
}

type rateWindow struct {
	mu    sync.Mutex
	count int
	start time.Time
}

// RateLimiter enforces a fixed request window per (client, bucket) pair.
// Windows live in memory for the process lifetime; each key carries its
// own lock so distinct clients never contend.
type RateLimiter struct {
	policies map[string]RatePolicy
	windows  sync.Map // "client:bucket" -> *rateWindow
	now      func() time.Time
}

func NewRateLimiter(policies map[string]RatePolicy) *RateLimiter {
	if policies == nil {
		policies = DefaultRatePolicies()
	}
	return &RateLimiter{policies: policies, now: time.Now}
}

// Allow records the request under (clientKey, bucket) and reports whether
// it fits the open window. Every call does bookkeeping: a denied request
// still counts, and denial never resets the window — the client waits out
// the remainder. Buckets without a policy are not guarded.
func (rl *RateLimiter) Allow(clientKey, bucket string) bool {
	policy, guarded := rl.policies[bucket]
	if !guarded {
		return true
	}
	v, _ := rl.windows.LoadOrStore(clientKey+":"+bucket, &rateWindow{})
	w := v.(*rateWindow)

	w.mu.Lock()
	defer w.mu.Unlock()

	now := rl.now()
	if w.start.IsZero() || now.Sub(w.start) >= policy.Window {
		w.start = now
		w.count = 1
		return true
	}
	w.count++
	return w.count <= policy.MaxRequests
}
