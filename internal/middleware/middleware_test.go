package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"garden-go/internal/config"
	"garden-go/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResolver struct {
	id  uint
	err error
}

func (s stubResolver) LatestLoginUserID(context.Context) (uint, error) {
	return s.id, s.err
}

func newAuthEngine(jwtManager *utils.JWTManager, fallback LatestLoginResolver) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(jwtManager, fallback))
	r.GET("/me", func(c *gin.Context) {
		id, ok := GetUserID(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		name, _ := GetUsername(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "username": name})
	})
	return r
}

func get(r http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", "HS256", time.Hour)
	token, err := jwtManager.GenerateToken(7, "alice")
	require.NoError(t, err)
	bearer := http.Header{"Authorization": {"Bearer " + token}}

	t.Run("token sets user", func(t *testing.T) {
		w := get(newAuthEngine(jwtManager, nil), "/me", bearer)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7,"username":"alice"}`, w.Body.String())
	})

	t.Run("token wins over fallback", func(t *testing.T) {
		w := get(newAuthEngine(jwtManager, stubResolver{id: 99}), "/me", bearer)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7,"username":"alice"}`, w.Body.String())
	})

	t.Run("missing token without fallback", func(t *testing.T) {
		w := get(newAuthEngine(jwtManager, nil), "/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"code":401,"detail":"User not found"}`, w.Body.String())
	})

	t.Run("fallback resolves latest login", func(t *testing.T) {
		w := get(newAuthEngine(jwtManager, stubResolver{id: 3}), "/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":3,"username":""}`, w.Body.String())
	})

	t.Run("fallback without users", func(t *testing.T) {
		w := get(newAuthEngine(jwtManager, stubResolver{err: errors.New("none")}), "/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := get(newAuthEngine(jwtManager, stubResolver{id: 3}), "/me", http.Header{"Authorization": {"Token abc"}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		other := utils.NewJWTManager("other", "HS256", time.Hour)
		forged, err := other.GenerateToken(7, "alice")
		require.NoError(t, err)
		w := get(newAuthEngine(jwtManager, nil), "/me", http.Header{"Authorization": {"Bearer " + forged}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := get(r, "/", nil)
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = get(r, "/", http.Header{RequestIDHeader: {"req-123"}})
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", w.Body.String())
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{CORS: config.CORSConfig{
		Origins:          []string{"http://garden.local"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Authorization"},
	}}
	r := gin.New()
	r.Use(CORS(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, "/", http.Header{"Origin": {"http://garden.local"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://garden.local", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))

	w = get(r, "/", http.Header{"Origin": {"http://evil.local"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggerMiddleware_RecordsRequestFields(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", "HS256", time.Hour)
	token, err := jwtManager.GenerateToken(7, "alice")
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(RequestID(), LoggerMiddleware(logger), AuthMiddleware(jwtManager, nil))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	get(r, "/me?x=1", http.Header{
		"Authorization": {"Bearer " + token},
		RequestIDHeader: {"req-7"},
	})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.Equal(t, "/me", entry.Data["path"])
	assert.Equal(t, "x=1", entry.Data["query"])
	assert.Equal(t, uint(7), entry.Data["user_id"])
	assert.Equal(t, "alice", entry.Data["username"])
	assert.Equal(t, "req-7", entry.Data["request_id"])

	hook.Reset()
	get(r, "/me", nil)
	entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, http.StatusUnauthorized, entry.Data["status"])
	assert.NotContains(t, entry.Data, "username")
}
