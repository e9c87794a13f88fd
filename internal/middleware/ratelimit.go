package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit enforces limit requests per window for the named resource, keyed
// by authenticated user when available, otherwise by remote IP. Redis errors
// and a nil client fail open: a broken limiter must not take down login.
func RateLimit(rdb *redis.Client, resource string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil {
				return next(c)
			}

			id := "ip:" + c.RealIP()
			if user := UserFromContext(c); user != nil {
				id = "user:" + user.ID.Hex()
			}
			key := fmt.Sprintf("rl:%s:%s", resource, id)

			ctx := c.Request().Context()
			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				rdb.Expire(ctx, key, window)
			}
			if count > int64(limit) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded, try again later")
			}
			return next(c)
		}
	}
}
