package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/pickup-kiosk/internal/model"
	"github.com/shinyyama/pickup-kiosk/internal/service"
)

type DisplayHandler struct {
	svc service.DisplayService
}

func NewDisplayHandler(svc service.DisplayService) *DisplayHandler {
	return &DisplayHandler{svc: svc}
}

type QRDisplayResponse struct {
	QRCode    string `json:"qrCode"`
	QRCodeURL string `json:"qrCodeUrl"`
	DisplayID string `json:"displayId"`
}

type DisplayConfigResponse struct {
	// RefreshInterval is in milliseconds.
	RefreshInterval  int64  `json:"refreshInterval"`
	QRSize           int    `json:"qrSize"`
	ShowInstructions bool   `json:"showInstructions"`
	Language         string `json:"language"`
	Theme            string `json:"theme"`
}

func toQRDisplayResponse(d *model.QRDisplayData) QRDisplayResponse {
	return QRDisplayResponse{QRCode: d.QRCode, QRCodeURL: d.QRCodeURL, DisplayID: d.DisplayID}
}

func toDisplayConfigResponse(d *model.DisplayConfig) DisplayConfigResponse {
	return DisplayConfigResponse{
		RefreshInterval:  d.RefreshInterval.Milliseconds(),
		QRSize:           d.QRSize,
		ShowInstructions: d.ShowInstructions,
		Language:         d.Language,
		Theme:            d.Theme,
	}
}

func (h *DisplayHandler) QR(c echo.Context) error {
	d, err := h.svc.GenerateDisplayQR(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternalError, "failed to generate display qr code")
	}
	return ok(c, toQRDisplayResponse(d))
}

func (h *DisplayHandler) Config(c echo.Context) error {
	return ok(c, toDisplayConfigResponse(h.svc.GetDisplayConfig()))
}
