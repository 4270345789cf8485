package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/pickup-kiosk/internal/model"
	"github.com/shinyyama/pickup-kiosk/internal/reqctx"
	"github.com/shinyyama/pickup-kiosk/internal/service"
)

type PickupHandler struct {
	svc service.PickupService
}

func NewPickupHandler(svc service.PickupService) *PickupHandler {
	return &PickupHandler{svc: svc}
}

type PickupResponse struct {
	PickupID      string  `json:"pickupId"`
	ScanID        string  `json:"scanId"`
	Status        string  `json:"status"`
	Progress      int     `json:"progress"`
	Instructions  string  `json:"instructions"`
	EstimatedTime int     `json:"estimatedTime"`
	StartedAt     string  `json:"startedAt"`
	LastUpdate    *string `json:"lastUpdate,omitempty"`
	CompletedAt   *string `json:"completedAt,omitempty"`
	CancelledAt   *string `json:"cancelledAt,omitempty"`
}

type StartPickupRequest struct {
	ScanID string `json:"scanId"`
}

type PickupIDRequest struct {
	PickupID string `json:"pickupId"`
}

func toPickupResponse(p *model.Pickup) PickupResponse {
	return PickupResponse{
		PickupID:      p.PickupID,
		ScanID:        p.ScanID,
		Status:        string(p.Status),
		Progress:      p.Progress,
		Instructions:  p.Instructions,
		EstimatedTime: p.EstimatedTime,
		StartedAt:     formatTime(p.StartedAt),
		LastUpdate:    formatTimePtr(p.LastUpdate),
		CompletedAt:   formatTimePtr(p.CompletedAt),
		CancelledAt:   formatTimePtr(p.CancelledAt),
	}
}

func (h *PickupHandler) Start(c echo.Context) error {
	var req StartPickupRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid json")
	}
	scanID := strings.TrimSpace(req.ScanID)
	if scanID == "" {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, "scanId is required")
	}
	p, err := h.svc.StartPickup(c.Request().Context(), scanID)
	if err != nil {
		return h.mapError(c, err)
	}
	return ok(c, toPickupResponse(p))
}

func (h *PickupHandler) Status(c echo.Context) error {
	pickupID := strings.TrimSpace(c.QueryParam("pickupId"))
	if pickupID == "" {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, "pickupId is required")
	}
	p, err := h.svc.GetPickupStatus(c.Request().Context(), pickupID)
	if err != nil {
		return h.mapError(c, err)
	}
	return ok(c, toPickupResponse(p))
}

func (h *PickupHandler) Complete(c echo.Context) error {
	pickupID, err := bindPickupID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
	}
	ctx := reqctx.WithPickupID(c.Request().Context(), pickupID)
	p, err := h.svc.CompletePickup(ctx, pickupID)
	if err != nil {
		return h.mapError(c, err)
	}
	return ok(c, toPickupResponse(p))
}

func (h *PickupHandler) Cancel(c echo.Context) error {
	pickupID, err := bindPickupID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
	}
	ctx := reqctx.WithPickupID(c.Request().Context(), pickupID)
	p, err := h.svc.CancelPickup(ctx, pickupID)
	if err != nil {
		return h.mapError(c, err)
	}
	return ok(c, toPickupResponse(p))
}

func bindPickupID(c echo.Context) (string, error) {
	var req PickupIDRequest
	if err := c.Bind(&req); err != nil {
		return "", errors.New("invalid json")
	}
	id := strings.TrimSpace(req.PickupID)
	if id == "" {
		return "", errors.New("pickupId is required")
	}
	return id, nil
}

func (h *PickupHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrScanNotFound):
		return fail(c, http.StatusNotFound, CodeScanNotFound, "scan not found")
	case errors.Is(err, service.ErrPickupNotFound):
		return fail(c, http.StatusNotFound, CodePickupNotFound, "pickup not found")
	case errors.Is(err, service.ErrPickupNotReady):
		return fail(c, http.StatusConflict, CodePickupNotReady, "pickup is not ready yet")
	case errors.Is(err, service.ErrInvalidTransition):
		return fail(c, http.StatusConflict, CodeInvalidTransition, err.Error())
	default:
		return fail(c, http.StatusInternalServerError, CodeInternalError, "pickup operation failed")
	}
}
