// Package main runs the toon sphere viewer in an SDL window.
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
	"github.com/Faultbox/toon-sphere/internal/viewer"
)

func init() {
	// SDL and OpenGL calls must stay on the main thread.
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

	logger.Info("=== Toon Sphere ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// Interrupts only matter while setup waits on assets.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	v, err := viewer.New(ctx, cfg)
	stop()
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		v.Close()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
