package app

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/focusflow/internal/config"
	"github.com/adanyl0v/focusflow/internal/storage"
)

const sqliteFileName = "focusflow.db"

var (
	globalStorage      storage.KV
	globalPostgresPool *pgxpool.Pool
)

func MustOpenStorage() {
	cfg := config.Global().Storage

	var err error
	switch cfg.Driver {
	case storage.DriverMemory:
		globalStorage = storage.NewMemory()
	case storage.DriverFile:
		globalStorage, err = storage.NewFile(cfg.Dir)
	case storage.DriverSQLite:
		err = os.MkdirAll(cfg.Dir, 0o755)
		if err == nil {
			globalStorage, err = storage.NewSQLite(context.Background(), filepath.Join(cfg.Dir, sqliteFileName))
		}
	case storage.DriverMySQL:
		globalStorage, err = storage.NewMySQL(context.Background(), cfg.DSN)
	case storage.DriverPostgres:
		mustConnectPostgres()
		globalStorage, err = storage.NewPostgres(context.Background(), globalPostgresPool)
	default:
		err = fmt.Errorf("%w: %s", storage.ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("driver", cfg.Driver).
			Msg("failed to open storage")
		panic(err)
	}

	globalLogger.Info().
		Str("driver", cfg.Driver).
		Msg("opened storage")
}

func CloseStorage() {
	if globalStorage != nil {
		err := globalStorage.Close()
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to close storage")
		}
	}

	if globalPostgresPool != nil {
		globalPostgresPool.Close()
		globalLogger.Info().Msg("disconnected from postgres")
	}
	globalLogger.Info().Msg("closed storage")
}

func mustConnectPostgres() {
	cfg := config.Global().Postgres
	poolCfg, err := pgxpool.ParseConfig(postgresConnURL(cfg))
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	globalPostgresPool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = globalPostgresPool.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")
}

func postgresConnURL(cfg config.PostgresConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}
