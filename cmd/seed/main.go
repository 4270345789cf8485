package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shinyyama/pickup-kiosk/internal/config"
	"github.com/shinyyama/pickup-kiosk/internal/db"
	"github.com/shinyyama/pickup-kiosk/internal/repository"
	"github.com/shinyyama/pickup-kiosk/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.StorageBackend != config.StorageDB {
		return fmt.Errorf("seed writes to SQL storage; set STORAGE_BACKEND=db (got %q)", cfg.StorageBackend)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	store := repository.NewGormStore(gdb)
	defer store.Close()

	// SEED_EXTRA_CODES adds comma separated codes for demo boxes beyond the defaults.
	var extra []string
	for _, code := range strings.Split(os.Getenv("SEED_EXTRA_CODES"), ",") {
		if code = strings.TrimSpace(code); code != "" {
			extra = append(extra, code)
		}
	}
	if err := service.SeedQRCodes(ctx, store.QRCodes, cfg.StoreID, extra...); err != nil {
		return err
	}

	codes, err := store.QRCodes.List(ctx)
	if err != nil {
		return fmt.Errorf("list codes: %w", err)
	}
	for _, c := range codes {
		log.Printf("code=%s source=%s", c.Code, c.Source)
	}
	log.Printf("seeded allow-list for %s: %d codes", cfg.StoreID, len(codes))
	return nil
}
