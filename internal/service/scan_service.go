package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shinyyama/pickup-kiosk/internal/model"
	"github.com/shinyyama/pickup-kiosk/internal/repository"
	"github.com/shinyyama/pickup-kiosk/internal/reqctx"
)

const testQRCode = "TEST_QR_CODE"

type ScanService interface {
	IsValidQRCode(ctx context.Context, code string) (bool, error)
	// ProcessScan records a scan without validating the code; call IsValidQRCode first.
	ProcessScan(ctx context.Context, qrCode string) (*model.Scan, error)
	GetScanStatus(ctx context.Context, scanID string) (*model.Scan, error)
}

type scanService struct {
	scans   repository.ScanRepository
	codes   repository.QRCodeRepository
	storeID string
	now     func() time.Time
}

func NewScanService(scans repository.ScanRepository, codes repository.QRCodeRepository, storeID string) ScanService {
	return &scanService{scans: scans, codes: codes, storeID: storeID, now: time.Now}
}

func (s *scanService) IsValidQRCode(ctx context.Context, code string) (bool, error) {
	if strings.HasPrefix(code, s.storeID+"_") {
		return true, nil
	}
	ok, err := s.codes.Contains(ctx, code)
	if err != nil {
		return false, fmt.Errorf("check allow-list: %w", err)
	}
	return ok, nil
}

func (s *scanService) ProcessScan(ctx context.Context, qrCode string) (*model.Scan, error) {
	scan := &model.Scan{
		ScanID:         uuid.NewString(),
		QRCode:         qrCode,
		StoreID:        s.storeID,
		AvailableBoxes: rand.Intn(5) + 1,
		IsValid:        true,
		CanProceed:     true,
		Timestamp:      s.now(),
	}
	if err := s.scans.Create(ctx, scan); err != nil {
		return nil, fmt.Errorf("store scan: %w", err)
	}
	log.Printf("[scan] rid=%s scan=%s stage=accepted boxes=%d", reqctx.RID(ctx), scan.ScanID, scan.AvailableBoxes)
	return scan, nil
}

func (s *scanService) GetScanStatus(ctx context.Context, scanID string) (*model.Scan, error) {
	scan, err := s.scans.FindByID(ctx, scanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScanNotFound
		}
		return nil, err
	}
	return scan, nil
}

// DefaultQRCodes are the codes accepted out of the box for a store.
func DefaultQRCodes(storeID string) []string {
	return []string{
		storeID + "_BOX_A",
		storeID + "_BOX_B",
		storeID + "_BOX_C",
		testQRCode,
	}
}

// SeedQRCodes registers DefaultQRCodes plus extra in the allow-list. Existing codes are kept.
func SeedQRCodes(ctx context.Context, codes repository.QRCodeRepository, storeID string, extra ...string) error {
	for _, code := range append(DefaultQRCodes(storeID), extra...) {
		if err := codes.Add(ctx, &model.QRCode{Code: code, Source: model.QRCodeSourceSeed}); err != nil {
			return fmt.Errorf("seed %s: %w", code, err)
		}
	}
	return nil
}
