package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

const (
	StorageMemory = "memory"
	StorageDB     = "db"
	StorageRedis  = "redis"

	SchedulerTimer = "timer"
	SchedulerAsynq = "asynq"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	StoreID       string `env:"STORE_ID" envDefault:"STORE_001"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`

	DBDriver               string `env:"DB_DRIVER" envDefault:"mysql"`
	DBUser                 string `env:"DB_USER"`
	DBPassword             string `env:"DB_PASSWORD"`
	DBHost                 string `env:"DB_HOST"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME"`
	DBPort                 string `env:"DB_PORT"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	Scheduler          string        `env:"SCHEDULER" envDefault:"timer"`
	ProgressInterval   time.Duration `env:"PROGRESS_INTERVAL" envDefault:"2s"`
	PickupRequireReady bool          `env:"PICKUP_REQUIRE_READY" envDefault:"false"`

	DisplayID              string        `env:"DISPLAY_ID"`
	DisplayRefreshInterval time.Duration `env:"DISPLAY_REFRESH_INTERVAL" envDefault:"30s"`
	DisplayQRSize          int           `env:"DISPLAY_QR_SIZE" envDefault:"256"`
	DisplayLanguage        string        `env:"DISPLAY_LANGUAGE" envDefault:"en"`
	DisplayTheme           string        `env:"DISPLAY_THEME" envDefault:"light"`

	StoreName     string `env:"STORE_NAME" envDefault:"Robotized Droneport"`
	StoreLocation string `env:"STORE_LOCATION" envDefault:"EXPO: Demo Location"`
	StoreContact  string `env:"STORE_CONTACT" envDefault:"business@mignon-robotics.kz"`

	SimulatedLatencyMin time.Duration `env:"SIMULATED_LATENCY_MIN" envDefault:"0s"`
	SimulatedLatencyMax time.Duration `env:"SIMULATED_LATENCY_MAX" envDefault:"0s"`

	CORSOriginSuffix string `env:"CORS_ORIGIN_SUFFIX" envDefault:"vercel.app"`

	AppVersion string `env:"APP_VERSION" envDefault:"1.0.0"`
	GitSHA     string `env:"GIT_SHA" envDefault:"dev"`
	BuildTime  string `env:"BUILD_TIME"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no environment is set.
func Default() *Config {
	var cfg Config
	// Only envDefault tags are involved, so parsing an empty environment cannot fail.
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return &cfg
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageMemory, StorageDB, StorageRedis:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch c.Scheduler {
	case SchedulerTimer, SchedulerAsynq:
	default:
		return fmt.Errorf("unknown SCHEDULER %q", c.Scheduler)
	}
	if c.StorageBackend == StorageDB {
		switch c.DBDriver {
		case DriverMySQL, DriverPostgres:
		default:
			return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
		}
		if c.DBUser == "" || c.DBName == "" || (c.DBHost == "" && c.InstanceConnectionName == "") {
			return fmt.Errorf("DB_USER, DB_NAME and DB_HOST are required for STORAGE_BACKEND=db")
		}
	}
	if c.StoreID == "" {
		return fmt.Errorf("STORE_ID must not be empty")
	}
	if c.ProgressInterval <= 0 {
		return fmt.Errorf("PROGRESS_INTERVAL must be positive")
	}
	if c.SimulatedLatencyMin < 0 || c.SimulatedLatencyMax < c.SimulatedLatencyMin {
		return fmt.Errorf("invalid simulated latency bounds %s..%s", c.SimulatedLatencyMin, c.SimulatedLatencyMax)
	}
	return nil
}

// StorePrefix is the prefix every code issued for this store starts with.
func (c *Config) StorePrefix() string {
	return c.StoreID + "_"
}

func (c *Config) DBPortOrDefault() string {
	if c.DBPort != "" {
		return c.DBPort
	}
	if c.DBDriver == DriverPostgres {
		return "5432"
	}
	return "3306"
}
