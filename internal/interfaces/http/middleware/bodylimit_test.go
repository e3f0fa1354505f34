package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newBodyLimitRouter(maxBytes int64, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(BodyLimit(maxBytes))
	router.POST("/clientes", handler)
	return router
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func TestBodyLimit_WithinLimit(t *testing.T) {
	router := newBodyLimitRouter(1024, okHandler)

	req := httptest.NewRequest(http.MethodPost, "/clientes", strings.NewReader(`{"nome":"Maria"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimit_RejectsDeclaredContentLength(t *testing.T) {
	router := newBodyLimitRouter(100, okHandler)

	req := httptest.NewRequest(http.MethodPost, "/clientes", strings.NewReader(strings.Repeat("x", 200)))
	req.ContentLength = 200
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
}

func TestBodyLimit_AllowsBodylessRequests(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimit(10))
	router.GET("/clientes", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/clientes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimit_ZeroDisablesLimit(t *testing.T) {
	router := newBodyLimitRouter(0, okHandler)

	req := httptest.NewRequest(http.MethodPost, "/clientes", strings.NewReader(strings.Repeat("x", 5000)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimit_CapsStreamingBodies(t *testing.T) {
	// A chunked request has no Content-Length, so only the
	// MaxBytesReader wrapper can stop it.
	router := newBodyLimitRouter(50, func(c *gin.Context) {
		buf := make([]byte, 200)
		if _, err := c.Request.Body.Read(buf); err != nil {
			c.String(http.StatusBadRequest, "body too large")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodPost, "/clientes", strings.NewReader(strings.Repeat("x", 100)))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
