package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/dantebozzuti27/baseline-video/internal/ratelimit"
	"github.com/dantebozzuti27/baseline-video/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// RateLimit throttles by client address. The limiter failing open keeps
// public previews available when Redis is down.
func RateLimit(limiter ratelimit.Limiter, logger *slog.Logger) drift.HandlerFunc {
	return func(c *drift.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), clientIP(c.Request))
		if err != nil {
			logger.WarnContext(c.Request.Context(), "rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			_ = c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Code:    "rate_limited",
				Message: "too many requests",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
