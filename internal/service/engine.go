package service

import (
	"github.com/shinyyama/pickup-kiosk/internal/config"
	"github.com/shinyyama/pickup-kiosk/internal/repository"
	"github.com/shinyyama/pickup-kiosk/internal/scheduler"
)

// Engine is the pickup lifecycle engine: every operation the kiosk exposes, built
// once over a single store and scheduler.
type Engine struct {
	Scans   ScanService
	Pickups PickupService
	System  SystemService
	Display DisplayService
}

func NewEngine(cfg *config.Config, store *repository.Store, sched scheduler.Scheduler) *Engine {
	return &Engine{
		Scans:   NewScanService(store.Scans, store.QRCodes, cfg.StoreID),
		Pickups: NewPickupService(store.Scans, store.Pickups, sched, PickupOptions{RequireReady: cfg.PickupRequireReady}),
		System:  NewSystemService(cfg, store),
		Display: NewDisplayService(store.QRCodes, cfg),
	}
}
