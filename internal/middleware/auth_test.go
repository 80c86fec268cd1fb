package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/auth"
	"github.com/dantebozzuti27/baseline-video/internal/services"
	"github.com/dantebozzuti27/baseline-video/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", 15*time.Minute)
}

func generateTestToken(t *testing.T, jwtSvc *services.JWTService, userID uuid.UUID) string {
	t.Helper()
	token, err := jwtSvc.GenerateAccessToken(userID)
	require.NoError(t, err)
	return token
}

// protectedApp mounts one route behind Auth and counts how often it runs.
func protectedApp(jwtSvc *services.JWTService, reached *int) http.Handler {
	app := drift.New()
	app.Use(Auth(jwtSvc))
	app.Get("/lessons", func(c *drift.Context) {
		*reached++
		_ = c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
	})
	return app
}

func TestAuth_Rejects(t *testing.T) {
	jwtSvc := newTestJWTService()
	valid := generateTestToken(t, jwtSvc, uuid.New())
	foreign := generateTestToken(t, services.NewJWTService("another-secret", 15*time.Minute), uuid.New())

	testCases := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "missing authorization header"},
		{"wrong scheme", "Token " + valid, "invalid authorization header format"},
		{"scheme only", "Bearer", "invalid authorization header format"},
		{"blank token", "Bearer   ", "invalid authorization header format"},
		{"garbage token", "Bearer not-a-jwt", "invalid or expired token"},
		{"wrong secret", "Bearer " + foreign, "invalid or expired token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reached := 0
			app := protectedApp(jwtSvc, &reached)

			req := httptest.NewRequest(http.MethodGet, "/lessons", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "unauthorized", body.Code)
			assert.Equal(t, tc.message, body.Message)
			assert.Zero(t, reached)
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	jwtSvc := services.NewJWTService("test-secret-key", time.Millisecond)
	token := generateTestToken(t, jwtSvc, uuid.New())
	time.Sleep(10 * time.Millisecond)

	reached := 0
	req := httptest.NewRequest(http.MethodGet, "/lessons", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedApp(jwtSvc, &reached).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, reached)
}

func TestAuth_ValidTokenReachesServicesContext(t *testing.T) {
	jwtSvc := newTestJWTService()
	userID := uuid.New()
	token := generateTestToken(t, jwtSvc, userID)

	var fromDrift, fromContext uuid.UUID
	var inContext bool

	app := drift.New()
	app.Use(Auth(jwtSvc))
	app.Get("/lessons", func(c *drift.Context) {
		fromDrift = GetUserID(c)
		fromContext, inContext = auth.UserID(c.Request.Context())
		_ = c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/lessons", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, fromDrift)
	assert.True(t, inContext)
	assert.Equal(t, userID, fromContext)
}

func TestAuth_SchemeIsCaseInsensitive(t *testing.T) {
	jwtSvc := newTestJWTService()
	token := generateTestToken(t, jwtSvc, uuid.New())

	for _, scheme := range []string{"bearer", "BEARER", "BeArEr"} {
		t.Run(scheme, func(t *testing.T) {
			reached := 0
			req := httptest.NewRequest(http.MethodGet, "/lessons", nil)
			req.Header.Set("Authorization", scheme+" "+token)
			rec := httptest.NewRecorder()
			protectedApp(jwtSvc, &reached).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, 1, reached)
		})
	}
}

func TestBearerToken(t *testing.T) {
	token, problem := bearerToken("Bearer  abc.def.ghi ")
	assert.Empty(t, problem)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestGetUserID_NotSet(t *testing.T) {
	app := drift.New()

	var extracted uuid.UUID
	app.Get("/health", func(c *drift.Context) {
		extracted = GetUserID(c)
		_ = c.JSON(http.StatusOK, nil)
	})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, uuid.Nil, extracted)
}
