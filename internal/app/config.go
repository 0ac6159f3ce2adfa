package app

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/focusflow/internal/config"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		cleanenv.FUsage(os.Stderr, &config.Config{}, nil)()
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("storage_driver", cfg.Storage.Driver).
		Str("timezone", cfg.Tasks.Timezone).
		Msg("read env")

	config.SetGlobal(cfg)
}
