package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shinyyama/pickup-kiosk/internal/config"
	"github.com/shinyyama/pickup-kiosk/internal/repository"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestSystemStatus(t *testing.T) {
	cfg := config.Default()
	svc := NewSystemService(cfg, repository.NewMemoryStore())
	st := svc.GetSystemStatus(context.Background())
	if st.Status != "online" || st.Uptime < 0 {
		t.Fatalf("status=%+v", st)
	}
	if !st.Services.Scanner || !st.Services.Display || !st.Services.API {
		t.Fatalf("services=%+v", st.Services)
	}
	info := svc.GetStoreInfo()
	if info.Name != "Robotized Droneport" || info.OperatingHours != "24/7" || info.Instructions.EN == "" || info.Instructions.KZ == "" {
		t.Fatalf("info=%+v", info)
	}
}

func TestHealth(t *testing.T) {
	cfg := config.Default()
	ok := NewSystemService(cfg, repository.NewMemoryStore()).GetHealth(context.Background())
	if ok.Status != "healthy" || !ok.Services["database"] || ok.Version != cfg.AppVersion {
		t.Fatalf("health=%+v", ok)
	}
	bad := NewSystemService(cfg, failingPinger{}).GetHealth(context.Background())
	if bad.Status != "degraded" || bad.Services["database"] {
		t.Fatalf("health with failing storage=%+v", bad)
	}
}

func TestUptimeCountsSeconds(t *testing.T) {
	svc := &systemService{cfg: config.Default(), startedAt: time.Unix(1000, 0), now: func() time.Time { return time.Unix(1090, 500) }}
	if got := svc.GetSystemStatus(context.Background()).Uptime; got != 90 {
		t.Fatalf("uptime=%d", got)
	}
}

func TestGenerateDisplayQR(t *testing.T) {
	cfg := config.Default()
	store := repository.NewMemoryStore()
	display := NewDisplayService(store.QRCodes, cfg)
	scans := NewScanService(store.Scans, store.QRCodes, cfg.StoreID)
	ctx := context.Background()

	first, err := display.GenerateDisplayQR(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, _ := display.GenerateDisplayQR(ctx)
	if first.DisplayID == second.DisplayID {
		t.Fatalf("display id reused without DISPLAY_ID: %s", first.DisplayID)
	}
	for _, d := range []string{first.QRCode, second.QRCode} {
		if ok, _ := scans.IsValidQRCode(ctx, d); !ok {
			t.Fatalf("generated code %s not valid", d)
		}
		if ok, _ := store.QRCodes.Contains(ctx, d); !ok {
			t.Fatalf("generated code %s not in allow-list", d)
		}
	}
	if first.QRCode != "STORE_001_DISPLAY_"+first.DisplayID || !strings.HasPrefix(first.DisplayID, "kiosk-") {
		t.Fatalf("code=%s display=%s", first.QRCode, first.DisplayID)
	}
	u, err := url.Parse(first.QRCodeURL)
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if u.Path != "/pickup" || u.Query().Get("code") != first.QRCode || u.Host != "localhost:3000" {
		t.Fatalf("url=%s", first.QRCodeURL)
	}
}

func TestGenerateDisplayQRFixedID(t *testing.T) {
	cfg := config.Default()
	cfg.DisplayID = "kiosk-5678"
	display := NewDisplayService(repository.NewMemoryStore().QRCodes, cfg)
	a, _ := display.GenerateDisplayQR(context.Background())
	b, _ := display.GenerateDisplayQR(context.Background())
	if a.QRCode != "STORE_001_DISPLAY_kiosk-5678" || a.QRCode != b.QRCode {
		t.Fatalf("a=%s b=%s", a.QRCode, b.QRCode)
	}
}

func TestDisplayConfig(t *testing.T) {
	dc := NewDisplayService(repository.NewMemoryStore().QRCodes, config.Default()).GetDisplayConfig()
	if dc.RefreshInterval != 30*time.Second || dc.QRSize != 256 || !dc.ShowInstructions || dc.Language != "en" || dc.Theme != "light" {
		t.Fatalf("config=%+v", dc)
	}
}
