package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ipContext(t *testing.T, remoteAddr string, headers map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestClientIPHeaderPrecedence(t *testing.T) {
	c := ipContext(t, "10.0.0.1:4321", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 198.51.100.2",
		"X-Real-IP":       "198.51.100.9",
	})
	assert.Equal(t, "203.0.113.7", clientIP(c))

	c = ipContext(t, "10.0.0.1:4321", map[string]string{
		"X-Real-IP": "198.51.100.9",
	})
	assert.Equal(t, "198.51.100.9", clientIP(c))
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	c := ipContext(t, "192.0.2.4:5678", nil)
	assert.Equal(t, "192.0.2.4", clientIP(c))

	// No port attached keeps the address untouched.
	c = ipContext(t, "192.0.2.4", nil)
	assert.Equal(t, "192.0.2.4", clientIP(c))
}
