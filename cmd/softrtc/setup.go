package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/quartzless/softrtc/internal/auth"
	"github.com/quartzless/softrtc/internal/clock/app"
	"github.com/quartzless/softrtc/internal/clock/port"
	"github.com/quartzless/softrtc/internal/config"
	"github.com/quartzless/softrtc/internal/domain"
	"github.com/quartzless/softrtc/internal/server"
	"github.com/quartzless/softrtc/internal/uptime"
)

// setup is the daemon composition root. It wires the uptime counter,
// the clock engine, the service layer, and the HTTP control surface,
// and hands the watch loop back to the lifecycle runner.
func setup(ctx context.Context, cfg *config.Config, logger *slog.Logger, mux *http.ServeMux) (server.Background, error) {
	source := uptime.New(logger)
	engine := domain.NewEngine(cfg.Clock.StartYear)
	svc := app.NewClockService(engine, source, logger)

	var validator *auth.Validator
	if cfg.API.JWTSecret != "" {
		validator = auth.NewValidator([]byte(cfg.API.JWTSecret), cfg.API.Issuer, cfg.API.Audience)
	} else {
		logger.Warn("api.jwt_secret not set, clock mutations are unauthenticated")
	}

	port.NewHandler(svc, validator, cfg.Clock.PollInterval).Register(mux)

	logger.InfoContext(ctx, "clock service initialized",
		slog.Int("start_year", cfg.Clock.StartYear),
		slog.String("boot_id", svc.BootID()),
		slog.Duration("poll_interval", cfg.Clock.PollInterval),
	)

	watch := func(bgCtx context.Context) error {
		return svc.Run(bgCtx, cfg.Clock.PollInterval)
	}
	return watch, nil
}
