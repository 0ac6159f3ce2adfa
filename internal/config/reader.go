package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/adanyl0v/focusflow/internal/storage"
)

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("unknown env: %s", c.Env)
	}

	switch c.Storage.Driver {
	case storage.DriverMemory, storage.DriverFile, storage.DriverSQLite:
	case storage.DriverMySQL:
		if c.Storage.DSN == "" {
			return errors.New("STORAGE_DSN is required for the mysql driver")
		}
	case storage.DriverPostgres:
		if c.Postgres.Username == "" || c.Postgres.Database == "" {
			return errors.New("POSTGRES_USERNAME and POSTGRES_DATABASE are required for the postgres driver")
		}
	default:
		return fmt.Errorf("%w: %s", storage.ErrUnknownDriver, c.Storage.Driver)
	}

	if c.Timer.FrameInterval <= 0 {
		return errors.New("TIMER_FRAME_INTERVAL must be positive")
	}

	_, err := time.LoadLocation(c.Tasks.Timezone)
	if err != nil {
		return fmt.Errorf("bad TASKS_TIMEZONE: %w", err)
	}
	return nil
}
