package app

import (
	"context"
	"time"

	"github.com/adanyl0v/focusflow/internal/clock"
	"github.com/adanyl0v/focusflow/internal/config"
	"github.com/adanyl0v/focusflow/internal/services"
)

var (
	globalTimerService services.TimerService
	globalTaskService  services.TaskService
	globalAuthService  services.AuthService
)

func MustInitServices() {
	cfg := config.Global()

	location, err := time.LoadLocation(cfg.Tasks.Timezone)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("timezone", cfg.Tasks.Timezone).
			Msg("failed to load timezone")
		panic(err)
	}

	systemClock := clock.NewSystemClock()
	scheduler := clock.NewFrameScheduler(systemClock, cfg.Timer.FrameInterval)

	ctx := context.Background()
	globalTimerService = services.NewTimerService(
		ctx,
		componentLogger("timer"),
		globalStorage,
		systemClock,
		scheduler,
		cfg.Storage.PersistTimeout,
	)
	globalTaskService = services.NewTaskService(
		ctx,
		componentLogger("tasks"),
		globalStorage,
		globalTimerService,
		location,
		cfg.Storage.PersistTimeout,
	)

	globalAuthService, err = services.NewAuthService(
		componentLogger("auth"),
		cfg.Auth.DevEmail,
		cfg.Auth.DevPassword,
		cfg.Auth.Issuer,
		[]byte(cfg.Auth.SigningKey),
		cfg.Auth.AccessTokenTTL,
	)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to init auth service")
		panic(err)
	}

	globalLogger.Info().
		Dur("frame_interval", cfg.Timer.FrameInterval).
		Int("tasks", len(globalTaskService.Tasks())).
		Bool("timer_running", globalTimerService.State().IsRunning).
		Msg("initialized services")
}

// CloseServices stops the frame loop so no tick writes after storage closes.
func CloseServices() {
	if globalTimerService != nil {
		globalTimerService.Close()
	}
	globalLogger.Info().Msg("closed services")
}
