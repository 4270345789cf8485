package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/pickup-kiosk/internal/model"
	"github.com/shinyyama/pickup-kiosk/internal/service"
)

type ScanHandler struct {
	svc service.ScanService
}

func NewScanHandler(svc service.ScanService) *ScanHandler {
	return &ScanHandler{svc: svc}
}

type ScanResponse struct {
	ScanID         string `json:"scanId"`
	QRCode         string `json:"qrCode"`
	StoreID        string `json:"storeId"`
	AvailableBoxes int    `json:"availableBoxes"`
	IsValid        bool   `json:"isValid"`
	CanProceed     bool   `json:"canProceed"`
	Timestamp      string `json:"timestamp"`
}

type ScanQRRequest struct {
	QRCode string `json:"qrCode"`
}

func toScanResponse(s *model.Scan) ScanResponse {
	return ScanResponse{
		ScanID:         s.ScanID,
		QRCode:         s.QRCode,
		StoreID:        s.StoreID,
		AvailableBoxes: s.AvailableBoxes,
		IsValid:        s.IsValid,
		CanProceed:     s.CanProceed,
		Timestamp:      formatTime(s.Timestamp),
	}
}

// ScanQR validates the code before recording the scan.
func (h *ScanHandler) ScanQR(c echo.Context) error {
	var req ScanQRRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid json")
	}
	code := strings.TrimSpace(req.QRCode)
	if code == "" {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, "qrCode is required")
	}
	ctx := c.Request().Context()
	valid, err := h.svc.IsValidQRCode(ctx, code)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternalError, "failed to validate qr code")
	}
	if !valid {
		return fail(c, http.StatusBadRequest, CodeInvalidQRCode, "qr code is not valid for this store")
	}
	scan, err := h.svc.ProcessScan(ctx, code)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternalError, "failed to process scan")
	}
	return ok(c, toScanResponse(scan))
}

func (h *ScanHandler) Status(c echo.Context) error {
	scanID := strings.TrimSpace(c.QueryParam("scanId"))
	if scanID == "" {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, "scanId is required")
	}
	scan, err := h.svc.GetScanStatus(c.Request().Context(), scanID)
	if err != nil {
		if errors.Is(err, service.ErrScanNotFound) {
			return fail(c, http.StatusNotFound, CodeScanNotFound, "scan not found")
		}
		return fail(c, http.StatusInternalServerError, CodeInternalError, "failed to fetch scan")
	}
	return ok(c, toScanResponse(scan))
}
