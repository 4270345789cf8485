package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shinyyama/pickup-kiosk/internal/config"
	"github.com/shinyyama/pickup-kiosk/internal/model"
	"github.com/shinyyama/pickup-kiosk/internal/repository"
	"github.com/shinyyama/pickup-kiosk/internal/reqctx"
)

type DisplayService interface {
	// GenerateDisplayQR issues a kiosk code and adds it to the allow-list.
	GenerateDisplayQR(ctx context.Context) (*model.QRDisplayData, error)
	GetDisplayConfig() *model.DisplayConfig
}

type displayService struct {
	codes repository.QRCodeRepository
	cfg   *config.Config
}

func NewDisplayService(codes repository.QRCodeRepository, cfg *config.Config) DisplayService {
	return &displayService{codes: codes, cfg: cfg}
}

func (s *displayService) displayID() string {
	if s.cfg.DisplayID != "" {
		return s.cfg.DisplayID
	}
	return "kiosk-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (s *displayService) GenerateDisplayQR(ctx context.Context) (*model.QRDisplayData, error) {
	displayID := s.displayID()
	code := fmt.Sprintf("%s_DISPLAY_%s", s.cfg.StoreID, displayID)
	if err := s.codes.Add(ctx, &model.QRCode{Code: code, Source: model.QRCodeSourceDisplay}); err != nil {
		return nil, fmt.Errorf("register display code: %w", err)
	}
	log.Printf("[display] rid=%s display=%s stage=issued", reqctx.RID(ctx), displayID)
	return &model.QRDisplayData{
		QRCode:    code,
		QRCodeURL: fmt.Sprintf("%s/pickup?code=%s", strings.TrimRight(s.cfg.PublicBaseURL, "/"), url.QueryEscape(code)),
		DisplayID: displayID,
	}, nil
}

func (s *displayService) GetDisplayConfig() *model.DisplayConfig {
	return &model.DisplayConfig{
		RefreshInterval:  s.cfg.DisplayRefreshInterval,
		QRSize:           s.cfg.DisplayQRSize,
		ShowInstructions: true,
		Language:         s.cfg.DisplayLanguage,
		Theme:            s.cfg.DisplayTheme,
	}
}
