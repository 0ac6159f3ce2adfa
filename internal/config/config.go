package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" env-required:"true"`
	HTTP     HTTPConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	Timer    TimerConfig
	Tasks    TasksConfig
	Auth     AuthConfig
}

type HTTPConfig struct {
	Host              string        `env:"HTTP_HOST" env-default:"localhost"`
	Port              string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s"`
}

type StorageConfig struct {
	// Driver is one of memory, file, sqlite, mysql or postgres.
	Driver string `env:"STORAGE_DRIVER" env-default:"file"`
	// Dir holds the files of the file driver and the sqlite database.
	Dir string `env:"STORAGE_DIR" env-default:"./data"`
	// DSN is used by the mysql driver.
	DSN            string        `env:"STORAGE_DSN"`
	PersistTimeout time.Duration `env:"STORAGE_PERSIST_TIMEOUT" env-default:"2s"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME"`
	Password       string        `env:"POSTGRES_PASSWORD"`
	Database       string        `env:"POSTGRES_DATABASE"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type TimerConfig struct {
	FrameInterval time.Duration `env:"TIMER_FRAME_INTERVAL" env-default:"16ms"`
}

type TasksConfig struct {
	// Timezone decides what "today" is for tasks created without a date.
	Timezone string `env:"TASKS_TIMEZONE" env-default:"UTC"`
}

type AuthConfig struct {
	Issuer         string        `env:"AUTH_ISSUER" env-default:"focusflow"`
	SigningKey     string        `env:"AUTH_SIGNING_KEY" env-required:"true"`
	AccessTokenTTL time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" env-default:"24h"`
	DevEmail       string        `env:"AUTH_DEV_EMAIL" env-default:"demo@focusflow.local"`
	DevPassword    string        `env:"AUTH_DEV_PASSWORD" env-required:"true"`
}
