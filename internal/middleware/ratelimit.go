package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rehabfolio/portfolio-api/internal/modules/serializer"
)

// RateLimit allows limit requests per client IP in each fixed window on
// /api/ paths. Counters live in Redis; when Redis fails the request passes.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	windowSec := int64(window / time.Second)
	if windowSec <= 0 {
		windowSec = 1
	}

	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}

		now := time.Now().Unix()
		slot := now / windowSec
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), slot)

		ctx := c.Request.Context()
		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, time.Duration(windowSec)*time.Second)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Sugar().Warnw("rate limiter unavailable", "err", err)
			c.Next()
			return
		}

		count := incr.Val()
		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			retry := (slot+1)*windowSec - now
			c.Header("Retry-After", strconv.FormatInt(retry, 10))
			serializer.Abort(c, http.StatusTooManyRequests, serializer.RateLimited())
			return
		}
		c.Next()
	}
}
