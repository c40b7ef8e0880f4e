// Package main runs the toon sphere inside an ImGui control panel.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/toon-sphere/internal/config"
	"github.com/Faultbox/toon-sphere/internal/logger"
	"github.com/Faultbox/toon-sphere/internal/panel"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Toon Sphere Panel ===")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	app, err := panel.New(ctx, cfg)
	stop()
	if err != nil {
		logger.Error("failed to create panel", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("panel error", zap.Error(err))
		app.Close()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("panel closed normally")
}
