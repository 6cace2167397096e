package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func loggedRequest(t *testing.T, authenticated bool) observer.LoggedEntry {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/v1/accounts/:id", func(c *gin.Context) {
		if authenticated {
			c.Set("userId", "usr-123")
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/accounts/1", nil)
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	require.Equal(t, 1, logs.Len())
	return logs.All()[0]
}

func TestRequestLoggerTagsAuthenticatedCaller(t *testing.T) {
	entry := loggedRequest(t, true)

	fields := entry.ContextMap()
	assert.Equal(t, "usr-123", fields["userId"])
	assert.Equal(t, "/v1/accounts/:id", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.NotEmpty(t, fields["requestId"])
}

func TestRequestLoggerOmitsUserIDWhenUnauthenticated(t *testing.T) {
	entry := loggedRequest(t, false)

	_, present := entry.ContextMap()["userId"]
	assert.False(t, present)
}
