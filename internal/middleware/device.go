package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/pickup-kiosk/internal/device"
)

// DeviceRewrite routes the root path to the interface matching the caller's device.
// It must be registered with Echo#Pre so the rewritten path is what gets routed.
func DeviceRewrite() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if rewritable(req.URL.Path) {
				res := device.Resolve(req.UserAgent(), req.URL.Query())
				target := device.Desktop
				if res.ShouldShowMobileInterface {
					target = device.Mobile
				}
				req.URL.Path = target.Path()
				req.URL.RawPath = ""
			}
			return next(c)
		}
	}
}

func rewritable(path string) bool {
	switch {
	case strings.HasPrefix(path, "/api/"):
		return false
	case strings.Contains(path, "."):
		return false
	case path == "/mobile", path == "/desktop":
		return false
	}
	return path == "" || path == "/"
}
