package service

import (
	"context"
	"log"
	"time"

	"github.com/shinyyama/pickup-kiosk/internal/config"
	"github.com/shinyyama/pickup-kiosk/internal/model"
)

const (
	instructionsEN = "Scan the QR code with your mobile device to start the pickup process"
	instructionsKZ = "Алу процесін бастау үшін мобильді құрылғыңызбен QR кодын сканерлеңіз"
)

// Pinger reports storage reachability for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemService interface {
	GetSystemStatus(ctx context.Context) *model.SystemStatus
	GetStoreInfo() *model.StoreInfo
	GetHealth(ctx context.Context) *model.Health
}

type systemService struct {
	cfg       *config.Config
	storage   Pinger
	startedAt time.Time
	now       func() time.Time
}

func NewSystemService(cfg *config.Config, storage Pinger) SystemService {
	return &systemService{cfg: cfg, storage: storage, startedAt: time.Now(), now: time.Now}
}

func (s *systemService) uptime() int64 {
	return int64(s.now().Sub(s.startedAt) / time.Second)
}

// GetSystemStatus always reports online; there is no hardware to aggregate.
func (s *systemService) GetSystemStatus(_ context.Context) *model.SystemStatus {
	return &model.SystemStatus{
		Status:     "online",
		Uptime:     s.uptime(),
		LastUpdate: s.now(),
		Services: model.SystemServices{
			Scanner: true,
			Display: true,
			API:     true,
		},
	}
}

func (s *systemService) GetStoreInfo() *model.StoreInfo {
	return &model.StoreInfo{
		Name:     s.cfg.StoreName,
		Location: s.cfg.StoreLocation,
		Instructions: model.StoreInstructions{
			EN: instructionsEN,
			KZ: instructionsKZ,
		},
		OperatingHours: "24/7",
		ContactInfo:    s.cfg.StoreContact,
	}
}

func (s *systemService) GetHealth(ctx context.Context) *model.Health {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	dbOK := true
	if s.storage != nil {
		if err := s.storage.Ping(ctx); err != nil {
			log.Printf("[system] stage=health_ping err=%v", err)
			dbOK = false
		}
	}
	status := "healthy"
	if !dbOK {
		status = "degraded"
	}
	return &model.Health{
		Status:  status,
		Uptime:  s.uptime(),
		Version: s.cfg.AppVersion,
		Services: map[string]bool{
			"scanner":  true,
			"display":  true,
			"api":      true,
			"database": dbOK,
		},
		LastHealthCheck: s.now(),
	}
}
