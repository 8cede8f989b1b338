package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/insight-backend/pkg/ctxutil"
)

// RateLimiter keeps one rate.Limiter per client and route group. Each Limit
// call is its own group, so two route groups with different budgets never
// drain each other. Limiters untouched for two sweep intervals are dropped.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[limiterKey]*clientLimiter
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

type limiterKey struct {
	group  int
	client string
}

type clientLimiter struct {
	limiter *rate.Limiter
	seen    time.Time
}

// NewRateLimiter starts the sweep goroutine; Stop ends it.
func NewRateLimiter(sweepInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[limiterKey]*clientLimiter),
		interval: sweepInterval,
		stop:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Stop is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

var limitGroups struct {
	sync.Mutex
	next int
}

// Limit allows perMinute requests per client, refilled evenly over the
// minute. The client is the address RealIP stored in the context, or the
// socket host without it.
func (rl *RateLimiter) Limit(perMinute int) Middleware {
	limitGroups.Lock()
	limitGroups.next++
	group := limitGroups.next
	limitGroups.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := ctxutil.ClientIPFromCtx(r.Context())
			if client == "" {
				client = clientIP(r, false)
			}

			wait, ok := rl.take(limiterKey{group: group, client: client}, perMinute, time.Now())
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeDetail(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take spends one token. A rejected request does not keep its reservation;
// the returned duration is how long until a token is available.
func (rl *RateLimiter) take(key limiterKey, perMinute int, now time.Time) (time.Duration, bool) {
	rl.mu.Lock()
	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		}
		rl.limiters[key] = cl
	}
	cl.seen = now
	lim := cl.limiter
	rl.mu.Unlock()

	res := lim.ReserveN(now, 1)
	if !res.OK() {
		return time.Minute, false
	}
	if d := res.DelayFrom(now); d > 0 {
		res.CancelAt(now)
		return d, false
	}
	return 0, true
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.sweep(now)
		}
	}
}

func (rl *RateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for k, cl := range rl.limiters {
		if now.Sub(cl.seen) > 2*rl.interval {
			delete(rl.limiters, k)
		}
	}
}
