// Package main is the entrypoint for the softrtc daemon.
// softrtc keeps wall-clock date and time for devices without an RTC,
// deriving the calendar from an elapsed uptime counter and a setpoint.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/quartzless/softrtc/internal/config"
	"github.com/quartzless/softrtc/internal/server"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return server.Run(ctx, server.Params{
		Name:               "softrtc",
		PortFromConfig:     func(cfg *config.Config) int { return cfg.Server.HTTPPort },
		GRPCPortFromConfig: func(cfg *config.Config) int { return cfg.Server.GRPCPort },
		Setup:              setup,
	}, server.Listeners{})
}
