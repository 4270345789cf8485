package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.StoreID != "STORE_001" {
		t.Fatalf("store id=%q", cfg.StoreID)
	}
	if cfg.ProgressInterval != 2*time.Second {
		t.Fatalf("interval=%s", cfg.ProgressInterval)
	}
	if cfg.StorageBackend != StorageMemory || cfg.Scheduler != SchedulerTimer {
		t.Fatalf("backend=%s scheduler=%s", cfg.StorageBackend, cfg.Scheduler)
	}
	if cfg.StorePrefix() != "STORE_001_" {
		t.Fatalf("prefix=%q", cfg.StorePrefix())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORE_ID", "STORE_042")
	t.Setenv("PROGRESS_INTERVAL", "150ms")
	t.Setenv("PICKUP_REQUIRE_READY", "true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreID != "STORE_042" || cfg.ProgressInterval != 150*time.Millisecond || !cfg.PickupRequireReady {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"unknown backend", func(c *Config) { c.StorageBackend = "disk" }, true},
		{"unknown scheduler", func(c *Config) { c.Scheduler = "cron" }, true},
		{"db without credentials", func(c *Config) { c.StorageBackend = StorageDB }, true},
		{"db ok", func(c *Config) {
			c.StorageBackend = StorageDB
			c.DBUser, c.DBName, c.DBHost = "kiosk", "kiosk", "localhost"
		}, false},
		{"db bad driver", func(c *Config) {
			c.StorageBackend = StorageDB
			c.DBDriver = "sqlite"
			c.DBUser, c.DBName, c.DBHost = "kiosk", "kiosk", "localhost"
		}, true},
		{"zero interval", func(c *Config) { c.ProgressInterval = 0 }, true},
		{"latency inverted", func(c *Config) {
			c.SimulatedLatencyMin = 500 * time.Millisecond
			c.SimulatedLatencyMax = 100 * time.Millisecond
		}, true},
		{"empty store", func(c *Config) { c.StoreID = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestDBPortOrDefault(t *testing.T) {
	cfg := Default()
	if got := cfg.DBPortOrDefault(); got != "3306" {
		t.Fatalf("mysql port=%s", got)
	}
	cfg.DBDriver = DriverPostgres
	if got := cfg.DBPortOrDefault(); got != "5432" {
		t.Fatalf("postgres port=%s", got)
	}
	cfg.DBPort = "6000"
	if got := cfg.DBPortOrDefault(); got != "6000" {
		t.Fatalf("explicit port=%s", got)
	}
}
