package signin

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/prajwalgurnule/Screenify/internal/config"
)

// maxTrackedClients bounds the limiter map. Refilled entries are swept
// first; if the map is still full the least recently seen client is evicted.
const maxTrackedClients = 10000

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles sign-in attempts per client IP.
type RateLimiter struct {
	limit      rate.Limit
	burst      int
	maxTracked int
	now        func() time.Time

	mu       sync.Mutex
	limiters map[string]*clientLimiter
}

// NewRateLimiter creates a limiter from the sign-in rate settings.
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	return &RateLimiter{
		limit:      rate.Every(time.Minute / time.Duration(cfg.RateLimit.SignInPerMinute)),
		burst:      cfg.RateLimit.SignInBurst,
		maxTracked: maxTrackedClients,
		now:        time.Now,
		limiters:   make(map[string]*clientLimiter),
	}
}

// Allow reports whether the client behind r may attempt a sign-in now.
func (l *RateLimiter) Allow(r *http.Request) bool {
	return l.allowKey(clientIP(r))
}

func (l *RateLimiter) allowKey(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= l.maxTracked {
			l.sweep(now)
		}
		for len(l.limiters) > 0 && len(l.limiters) >= l.maxTracked {
			l.evictOldest()
		}
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// sweep drops clients whose bucket has refilled, which makes them
// indistinguishable from new ones. Caller holds mu.
func (l *RateLimiter) sweep(now time.Time) {
	refill := time.Duration(float64(l.burst) / float64(l.limit) * float64(time.Second))
	for key, cl := range l.limiters {
		if now.Sub(cl.lastSeen) > refill {
			delete(l.limiters, key)
		}
	}
}

// evictOldest drops the least recently seen client. Caller holds mu.
func (l *RateLimiter) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, cl := range l.limiters {
		if !found || cl.lastSeen.Before(oldest) {
			oldestKey, oldest, found = key, cl.lastSeen, true
		}
	}
	if found {
		delete(l.limiters, oldestKey)
	}
}

func (l *RateLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
