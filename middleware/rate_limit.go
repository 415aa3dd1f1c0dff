package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidrapp/sidr-be/util"
	"go.uber.org/zap"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, int64, error)
	Limit() int64
}

// RateLimit throttles per viewer, falling back to the client IP. A nil
// limiter disables throttling. Limiter failures let the request through.
func RateLimit(limiter Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			return
		}
		key := GetUserIdMaybe(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}
		ok, n, err := limiter.Allow(c, scope+":"+key)
		if err != nil {
			zap.L().Warn("rate limiter unavailable", zap.Error(err))
			return
		}
		if !ok {
			util.HandleHTTPErrorRes(c, &util.HTTPError{
				Status:  http.StatusTooManyRequests,
				Message: fmt.Sprintf("rate limit exceeded (count=%d, limit=%d)", n, limiter.Limit()),
			})
		}
	}
}
