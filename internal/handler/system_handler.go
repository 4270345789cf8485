package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/shinyyama/pickup-kiosk/internal/model"
	"github.com/shinyyama/pickup-kiosk/internal/service"
)

type SystemHandler struct {
	svc service.SystemService
}

func NewSystemHandler(svc service.SystemService) *SystemHandler {
	return &SystemHandler{svc: svc}
}

type SystemStatusResponse struct {
	Status     string `json:"status"`
	Uptime     int64  `json:"uptime"`
	LastUpdate string `json:"lastUpdate"`
	Services   struct {
		Scanner bool `json:"scanner"`
		Display bool `json:"display"`
		API     bool `json:"api"`
	} `json:"services"`
}

type StoreInfoResponse struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	Instructions struct {
		EN string `json:"en"`
		KZ string `json:"kz"`
	} `json:"instructions"`
	OperatingHours string `json:"operatingHours"`
	ContactInfo    string `json:"contactInfo"`
}

type HealthResponse struct {
	Status          string          `json:"status"`
	Uptime          int64           `json:"uptime"`
	Version         string          `json:"version"`
	Services        map[string]bool `json:"services"`
	LastHealthCheck string          `json:"lastHealthCheck"`
}

func toSystemStatusResponse(s *model.SystemStatus) SystemStatusResponse {
	resp := SystemStatusResponse{
		Status:     s.Status,
		Uptime:     s.Uptime,
		LastUpdate: formatTime(s.LastUpdate),
	}
	resp.Services.Scanner = s.Services.Scanner
	resp.Services.Display = s.Services.Display
	resp.Services.API = s.Services.API
	return resp
}

func toStoreInfoResponse(i *model.StoreInfo) StoreInfoResponse {
	resp := StoreInfoResponse{
		Name:           i.Name,
		Location:       i.Location,
		OperatingHours: i.OperatingHours,
		ContactInfo:    i.ContactInfo,
	}
	resp.Instructions.EN = i.Instructions.EN
	resp.Instructions.KZ = i.Instructions.KZ
	return resp
}

func toHealthResponse(h *model.Health) HealthResponse {
	return HealthResponse{
		Status:          h.Status,
		Uptime:          h.Uptime,
		Version:         h.Version,
		Services:        h.Services,
		LastHealthCheck: formatTime(h.LastHealthCheck),
	}
}

func (h *SystemHandler) Status(c echo.Context) error {
	return ok(c, toSystemStatusResponse(h.svc.GetSystemStatus(c.Request().Context())))
}

func (h *SystemHandler) Info(c echo.Context) error {
	return ok(c, toStoreInfoResponse(h.svc.GetStoreInfo()))
}

// Health reports degraded storage in the body; the request itself still succeeds.
func (h *SystemHandler) Health(c echo.Context) error {
	return ok(c, toHealthResponse(h.svc.GetHealth(c.Request().Context())))
}
