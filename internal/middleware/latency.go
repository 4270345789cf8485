package middleware

import (
	"math/rand"
	"time"

	"github.com/labstack/echo/v4"
)

// SimulatedLatency delays each request by a random duration in [lo, hi].
// With hi == 0 it is a no-op.
func SimulatedLatency(lo, hi time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if hi <= 0 {
			return next
		}
		return func(c echo.Context) error {
			d := lo
			if hi > lo {
				d += time.Duration(rand.Int63n(int64(hi - lo + 1)))
			}
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-t.C:
			case <-c.Request().Context().Done():
				return c.Request().Context().Err()
			}
			return next(c)
		}
	}
}
