package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/pickup-kiosk/internal/device"
	"github.com/shinyyama/pickup-kiosk/internal/service"
)

// DeviceHandler serves the device probe and the two interface bundles the root
// path is rewritten to.
type DeviceHandler struct {
	system  service.SystemService
	display service.DisplayService
}

func NewDeviceHandler(system service.SystemService, display service.DisplayService) *DeviceHandler {
	return &DeviceHandler{system: system, display: display}
}

type DeviceResponse struct {
	IsMobile                   bool `json:"isMobile"`
	IsDesktop                  bool `json:"isDesktop"`
	ShouldShowMobileInterface  bool `json:"shouldShowMobileInterface"`
	ShouldShowDesktopInterface bool `json:"shouldShowDesktopInterface"`
}

type MobileEndpoints struct {
	ScanQR         string `json:"scanQr"`
	ScanStatus     string `json:"scanStatus"`
	PickupStart    string `json:"pickupStart"`
	PickupStatus   string `json:"pickupStatus"`
	PickupComplete string `json:"pickupComplete"`
	PickupCancel   string `json:"pickupCancel"`
}

type MobileResponse struct {
	Interface string            `json:"interface"`
	Device    DeviceResponse    `json:"device"`
	StoreInfo StoreInfoResponse `json:"storeInfo"`
	Endpoints MobileEndpoints   `json:"endpoints"`
}

type DesktopResponse struct {
	Interface     string                `json:"interface"`
	Device        DeviceResponse        `json:"device"`
	StoreInfo     StoreInfoResponse     `json:"storeInfo"`
	DisplayConfig DisplayConfigResponse `json:"displayConfig"`
	QR            QRDisplayResponse     `json:"qr"`
}

var mobileEndpoints = MobileEndpoints{
	ScanQR:         "/api/scan/qr",
	ScanStatus:     "/api/scan/status",
	PickupStart:    "/api/pickup/start",
	PickupStatus:   "/api/pickup/status",
	PickupComplete: "/api/pickup/complete",
	PickupCancel:   "/api/pickup/cancel",
}

func toDeviceResponse(r device.Result) DeviceResponse {
	return DeviceResponse{
		IsMobile:                   r.IsMobile,
		IsDesktop:                  r.IsDesktop,
		ShouldShowMobileInterface:  r.ShouldShowMobileInterface,
		ShouldShowDesktopInterface: r.ShouldShowDesktopInterface,
	}
}

func resolveDevice(c echo.Context) device.Result {
	return device.Resolve(c.Request().UserAgent(), c.QueryParams())
}

func (h *DeviceHandler) Detect(c echo.Context) error {
	return ok(c, toDeviceResponse(resolveDevice(c)))
}

func (h *DeviceHandler) Mobile(c echo.Context) error {
	return ok(c, MobileResponse{
		Interface: string(device.Mobile),
		Device:    toDeviceResponse(resolveDevice(c)),
		StoreInfo: toStoreInfoResponse(h.system.GetStoreInfo()),
		Endpoints: mobileEndpoints,
	})
}

// Desktop issues a fresh display code on every load, like the kiosk page does.
func (h *DeviceHandler) Desktop(c echo.Context) error {
	qr, err := h.display.GenerateDisplayQR(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternalError, "failed to generate display qr code")
	}
	return ok(c, DesktopResponse{
		Interface:     string(device.Desktop),
		Device:        toDeviceResponse(resolveDevice(c)),
		StoreInfo:     toStoreInfoResponse(h.system.GetStoreInfo()),
		DisplayConfig: toDisplayConfigResponse(h.display.GetDisplayConfig()),
		QR:            toQRDisplayResponse(qr),
	})
}
