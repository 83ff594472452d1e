package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/meetiosdev/topics-api/shared/api"
	"github.com/meetiosdev/topics-api/shared/errors"
	"github.com/meetiosdev/topics-api/shared/logger"
	"github.com/meetiosdev/topics-api/shared/middleware/ratelimiter"
	"github.com/meetiosdev/topics-api/shared/utils"
)

func RateLimit(rl *ratelimiter.Limiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			allowed, remaining, retryAfter := rl.Take(identity)
			w.Header().Set("RateLimit-Limit", strconv.Itoa(rl.Capacity()))
			w.Header().Set("RateLimit-Remaining", strconv.Itoa(remaining))
			if !allowed {
				logger.Log.Warn("rate limit exceeded", "identity", identity, "path", r.URL.Path)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				utils.WriteJSON(w, http.StatusTooManyRequests, api.Response{
					Error: "Too many requests from this IP, please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GlobalRateLimit(rl *ratelimiter.Limiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// GetIP extracts the client IP from RemoteAddr only.
// Forwarding headers are ignored since they can be spoofed; chi's RealIP is not mounted for the same reason.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without port
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", &errors.ErrorWithStatusCode{Message: fmt.Sprintf("invalid IP address: %s", ip), StatusCode: http.StatusBadRequest}
	}

	return ip, nil
}
