package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shinyyama/pickup-kiosk/internal/repository"
)

func newScanService(t *testing.T) (ScanService, *repository.Store) {
	t.Helper()
	store := repository.NewMemoryStore()
	if err := SeedQRCodes(context.Background(), store.QRCodes, "STORE_001"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewScanService(store.Scans, store.QRCodes, "STORE_001"), store
}

func TestIsValidQRCode(t *testing.T) {
	svc, _ := newScanService(t)
	tests := []struct {
		code string
		want bool
	}{
		{"STORE_001_BOX_A", true},
		{"STORE_001_BOX_C", true},
		{"TEST_QR_CODE", true},
		{"STORE_001_ANYTHING", true},
		{"STORE_001_", true},
		{"INVALID_CODE", false},
		{"STORE_002_BOX_A", false},
		{"store_001_box_a", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := svc.IsValidQRCode(context.Background(), tt.code)
			if err != nil {
				t.Fatalf("err=%v", err)
			}
			if got != tt.want {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestProcessScanUniqueIDs(t *testing.T) {
	svc, _ := newScanService(t)
	ctx := context.Background()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		s, err := svc.ProcessScan(ctx, "STORE_001_BOX_B")
		if err != nil {
			t.Fatalf("scan: %v", err)
		}
		if seen[s.ScanID] {
			t.Fatalf("duplicate scan id %s", s.ScanID)
		}
		seen[s.ScanID] = true
		if s.AvailableBoxes < 1 || s.AvailableBoxes > 5 {
			t.Fatalf("boxes out of range: %d", s.AvailableBoxes)
		}
		if !s.IsValid || !s.CanProceed || s.StoreID != "STORE_001" || s.Timestamp.IsZero() {
			t.Fatalf("unexpected scan %+v", s)
		}
		got, err := svc.GetScanStatus(ctx, s.ScanID)
		if err != nil || got.QRCode != "STORE_001_BOX_B" {
			t.Fatalf("lookup=%+v err=%v", got, err)
		}
	}
}

// ProcessScan does not validate: callers are expected to check IsValidQRCode first.
func TestProcessScanDoesNotValidate(t *testing.T) {
	svc, _ := newScanService(t)
	s, err := svc.ProcessScan(context.Background(), "INVALID_CODE")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !s.IsValid || !s.CanProceed {
		t.Fatalf("unvalidated scan recorded as %+v", s)
	}
}

func TestGetScanStatusNotFound(t *testing.T) {
	svc, _ := newScanService(t)
	if _, err := svc.GetScanStatus(context.Background(), "nope"); !errors.Is(err, ErrScanNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestSeedQRCodesIdempotent(t *testing.T) {
	_, store := newScanService(t)
	ctx := context.Background()
	if err := SeedQRCodes(ctx, store.QRCodes, "STORE_001"); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	list, _ := store.QRCodes.List(ctx)
	if len(list) != len(DefaultQRCodes("STORE_001")) {
		t.Fatalf("allow-list size=%d", len(list))
	}
}

func TestSeedQRCodesExtra(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	if err := SeedQRCodes(ctx, store.QRCodes, "STORE_001", "PROMO_42"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewScanService(store.Scans, store.QRCodes, "STORE_001")
	if ok, _ := svc.IsValidQRCode(ctx, "PROMO_42"); !ok {
		t.Fatalf("extra code not accepted")
	}
}
