package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers struct {
	db.UserDatabase
	users map[string]*model.User
}

func (fu *fakeUsers) GetUser(_ context.Context, id string) (*model.User, error) {
	return fu.users[id], nil
}

type countingLimiter struct {
	limit int64
	hits  map[string]int64
	err   error
}

func (cl *countingLimiter) Allow(_ context.Context, key string) (bool, int64, error) {
	if cl.err != nil {
		return false, 0, cl.err
	}
	cl.hits[key]++
	return cl.hits[key] <= cl.limit, cl.hits[key], nil
}

func (cl *countingLimiter) Limit() int64 { return cl.limit }

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"viewer": GetUserIdMaybe(c)})
	})...)
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, verifier *services.JWTVerifier, uid string) string {
	t.Helper()
	token, err := verifier.SignDevToken(uid, "")
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGenAuth(t *testing.T) {
	verifier := services.NewJWTVerifier("secret")
	users := &fakeUsers{users: map[string]*model.User{"u1": {Id: "u1"}}}

	strict := newEngine(GenAuth(users, verifier, &AuthConfig{}))
	assert.Equal(t, http.StatusUnauthorized, get(strict, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(strict, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(strict, "Bearer not-a-jwt").Code)
	assert.Equal(t, http.StatusForbidden, get(strict, bearer(t, verifier, "u2")).Code)
	w := get(strict, bearer(t, verifier, "u1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"viewer":"u1"`)

	optional := newEngine(GenAuth(users, verifier, &AuthConfig{SessionNotRequired: true}))
	assert.Equal(t, http.StatusOK, get(optional, "").Code)
	assert.Equal(t, http.StatusOK, get(optional, "Bearer not-a-jwt").Code)

	signup := newEngine(GenAuth(users, verifier, &AuthConfig{ProfileNotRequired: true}), func(c *gin.Context) {
		assert.Equal(t, "u2", GetIdentity(c).UID)
	})
	assert.Equal(t, http.StatusOK, get(signup, bearer(t, verifier, "u2")).Code)
}

func TestRequireAdmin(t *testing.T) {
	verifier := services.NewJWTVerifier("secret")
	users := &fakeUsers{users: map[string]*model.User{
		"u1":  {Id: "u1"},
		"mod": {Id: "mod", IsAdmin: true},
	}}
	r := newEngine(GenAuth(users, verifier, &AuthConfig{}), RequireAdmin())
	assert.Equal(t, http.StatusForbidden, get(r, bearer(t, verifier, "u1")).Code)
	assert.Equal(t, http.StatusOK, get(r, bearer(t, verifier, "mod")).Code)
}

func TestRateLimit(t *testing.T) {
	limiter := &countingLimiter{limit: 2, hits: map[string]int64{}}
	r := newEngine(RateLimit(limiter, "test"))
	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "").Code)
	assert.Equal(t, int64(3), limiter.hits["test:ip:192.0.2.1"])
}

func TestRateLimitFailsOpen(t *testing.T) {
	zap.ReplaceGlobals(zap.NewNop())
	r := newEngine(RateLimit(&countingLimiter{err: errors.New("redis down")}, "test"))
	assert.Equal(t, http.StatusOK, get(r, "").Code)

	assert.Equal(t, http.StatusOK, get(newEngine(RateLimit(nil, "test")), "").Code)
}

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	var deadline time.Time
	var ok bool
	r := newEngine(RequestTimeout(time.Minute), func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
	})
	get(r, "")
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestMetricsCountsByRoute(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	r := newEngine(metrics.Handler())
	get(r, "")
	get(r, "")
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/", "200")))
}
