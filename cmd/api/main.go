package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shinyyama/pickup-kiosk/internal/config"
	"github.com/shinyyama/pickup-kiosk/internal/db"
	"github.com/shinyyama/pickup-kiosk/internal/model"
	"github.com/shinyyama/pickup-kiosk/internal/repository"
	"github.com/shinyyama/pickup-kiosk/internal/scheduler"
	"github.com/shinyyama/pickup-kiosk/internal/server"
	"github.com/shinyyama/pickup-kiosk/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := service.SeedQRCodes(context.Background(), store.QRCodes, cfg.StoreID); err != nil {
		return fmt.Errorf("seed qr codes: %w", err)
	}

	sched, err := openScheduler(cfg)
	if err != nil {
		return err
	}
	defer sched.Close()

	srv := server.New(cfg, service.NewEngine(cfg, store, sched))
	addr := ":" + cfg.Port

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s storage=%s scheduler=%s", addr, store.Backend, cfg.Scheduler)
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Printf("server shut down")
	return nil
}

func openStore(cfg *config.Config) (*repository.Store, error) {
	switch cfg.StorageBackend {
	case config.StorageDB:
		conn, err := db.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		if err := db.Migrate(conn); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return repository.NewGormStore(conn), nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return repository.NewRedisStore(client), nil
	default:
		return repository.NewMemoryStore(), nil
	}
}

func openScheduler(cfg *config.Config) (scheduler.Scheduler, error) {
	steps := len(model.ProgressSteps)
	if cfg.Scheduler != config.SchedulerAsynq {
		return scheduler.NewTimerScheduler(cfg.ProgressInterval, steps), nil
	}
	s := scheduler.NewAsynqScheduler(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, cfg.ProgressInterval, steps)
	if err := s.Start(); err != nil {
		return nil, fmt.Errorf("start asynq worker: %w", err)
	}
	return s, nil
}
