package middleware

import (
	"net/http"
	"sync"

	"github.com/cmlabs-hris/workspace-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/jwt"
	"golang.org/x/time/rate"
)

// UserRateLimiter keeps one token bucket per identity uid.
type UserRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	b        int
}

func NewUserRateLimiter(r rate.Limit, b int) *UserRateLimiter {
	return &UserRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (l *UserRateLimiter) limiter(uid string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[uid]
	if !ok {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[uid] = limiter
	}
	return limiter
}

// Allow reports whether uid may make another request now.
func (l *UserRateLimiter) Allow(uid string) bool {
	return l.limiter(uid).Allow()
}

// RateLimitByUser throttles authenticated requests per identity. Requests
// without an identity pass through; AuthRequired rejects them.
func RateLimitByUser(l *UserRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := jwt.IdentityFromContext(r.Context())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if !l.Allow(identity.UID) {
				response.TooManyRequests(w, "Too many requests, slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
