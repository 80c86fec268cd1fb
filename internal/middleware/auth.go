package middleware

import (
	"net/http"
	"strings"

	"github.com/dantebozzuti27/baseline-video/internal/auth"
	"github.com/dantebozzuti27/baseline-video/internal/services"
	"github.com/dantebozzuti27/baseline-video/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const UserIDKey = "user_id"

// Auth authenticates the bearer token. Only the user id is taken from the
// token; team and role are resolved from the profile by each operation.
func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		token, problem := bearerToken(c.GetHeader("Authorization"))
		if problem != "" {
			unauthorized(c, problem)
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

func bearerToken(header string) (token, problem string) {
	if header == "" {
		return "", "missing authorization header"
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", "invalid authorization header format"
	}
	return token, ""
}

func unauthorized(c *drift.Context, message string) {
	_ = c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Code: string(services.KindUnauthorized), Message: message})
	c.Abort()
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}
