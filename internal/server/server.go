package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/pickup-kiosk/internal/config"
	"github.com/shinyyama/pickup-kiosk/internal/handler"
	appmw "github.com/shinyyama/pickup-kiosk/internal/middleware"
	"github.com/shinyyama/pickup-kiosk/internal/service"
)

type Server struct {
	e *echo.Echo
}

func New(cfg *config.Config, engine *service.Engine) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Pre(appmw.DeviceRewrite())
	e.Use(middleware.Recover())
	e.Use(appmw.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", echo.HeaderXRequestID},
		AllowCredentials: true,
		AllowOriginFunc:  allowOrigin(cfg.CORSOriginSuffix),
	}))

	scanHandler := handler.NewScanHandler(engine.Scans)
	pickupHandler := handler.NewPickupHandler(engine.Pickups)
	systemHandler := handler.NewSystemHandler(engine.System)
	displayHandler := handler.NewDisplayHandler(engine.Display)
	deviceHandler := handler.NewDeviceHandler(engine.System, engine.Display)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    cfg.GitSHA,
			"build_time": cfg.BuildTime,
		})
	})
	e.GET("/mobile", deviceHandler.Mobile)
	e.GET("/desktop", deviceHandler.Desktop)

	api := e.Group("/api", appmw.SimulatedLatency(cfg.SimulatedLatencyMin, cfg.SimulatedLatencyMax))
	api.POST("/scan/qr", scanHandler.ScanQR)
	api.GET("/scan/status", scanHandler.Status)
	api.POST("/pickup/start", pickupHandler.Start)
	api.GET("/pickup/status", pickupHandler.Status)
	api.POST("/pickup/complete", pickupHandler.Complete)
	api.POST("/pickup/cancel", pickupHandler.Cancel)
	api.GET("/system/status", systemHandler.Status)
	api.GET("/system/info", systemHandler.Info)
	api.GET("/system/health", systemHandler.Health)
	api.GET("/display/qr", displayHandler.QR)
	api.GET("/display/config", displayHandler.Config)
	api.GET("/device", deviceHandler.Detect)

	return &Server{e: e}
}

// allowOrigin accepts local development origins and any host under suffix.
func allowOrigin(suffix string) func(string) (bool, error) {
	return func(origin string) (bool, error) {
		low := strings.ToLower(origin)
		if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
			strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
			return true, nil
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false, nil
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false, nil
		}
		if suffix != "" && strings.HasSuffix(u.Hostname(), suffix) {
			return true, nil
		}
		return false, nil
	}
}

// Handler exposes the router for in-process use.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
