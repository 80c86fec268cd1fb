package middleware

import (
	"github.com/dantebozzuti27/baseline-video/internal/logging"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"

	maxRequestIDLength = 128
)

// RequestID propagates the client's request id, or mints one, into the
// response header and the request context used for logging.
func RequestID() drift.HandlerFunc {
	return func(c *drift.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Response.Header().Set(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}
