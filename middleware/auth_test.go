package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func init() {
	gin.SetMode(gin.TestMode)
}

func TestIssueAndVerifyToken(t *testing.T) {
	now := time.Now()
	token, err := IssueToken(testKey, "64b7f0c2a1b2c3d4e5f60718", now)
	require.NoError(t, err)

	id, err := VerifyToken(testKey, token, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", id)

	_, err = VerifyToken(testKey, token, now.Add(TokenTTL+time.Minute))
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	_, err = VerifyToken([]byte("ffffffffffffffffffffffffffffffff"), token, now)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong key")

	_, err = VerifyToken(testKey, "v2.local.garbage", now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func newAuthRouter(strict bool) *gin.Engine {
	r := gin.New()
	r.Use(ParseAdmin(testKey, strict))
	r.GET("/open", func(c *gin.Context) {
		id, _ := AdminID(c)
		c.String(http.StatusOK, id)
	})
	r.GET("/closed", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestParseAdminAndRequireAdmin(t *testing.T) {
	r := newAuthRouter(true)
	token, err := IssueToken(testKey, "admin-1", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{name: "open without token", path: "/open", status: http.StatusOK, body: ""},
		{name: "open with token", path: "/open", header: "Bearer " + token, status: http.StatusOK, body: "admin-1"},
		{name: "bad token rejected", path: "/open", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "closed without token", path: "/closed", status: http.StatusUnauthorized},
		{name: "closed with basic auth", path: "/closed", header: "Basic Zm9vOmJhcg==", status: http.StatusUnauthorized},
		{name: "closed with token", path: "/closed", header: "Bearer " + token, status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" || tt.status == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestParseAdminLenientIgnoresBadToken(t *testing.T) {
	r := newAuthRouter(false)
	expired, err := IssueToken(testKey, "admin-1", time.Now().Add(-2*TokenTTL))
	require.NoError(t, err)

	for _, header := range []string{"Bearer nope", "Bearer " + expired} {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.Empty(t, w.Body.String(), "no admin is set from a rejected token")

		req = httptest.NewRequest(http.MethodGet, "/closed", nil)
		req.Header.Set("Authorization", header)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestCORSAllowAll(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowList(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
