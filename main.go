package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tphakala/wildlog/cmd"
	"github.com/tphakala/wildlog/internal/buildinfo"
	"github.com/tphakala/wildlog/internal/conf"
	"github.com/tphakala/wildlog/internal/config"
	"github.com/tphakala/wildlog/internal/errors"
	"github.com/tphakala/wildlog/internal/logger"
	"github.com/tphakala/wildlog/internal/telemetry"
)

// Build metadata, set via ldflags during build
var (
	version   = "dev"
	buildDate = ""
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		return 1
	}

	if settings.Debug {
		settings.Logging.DefaultLevel = string(logger.LogLevelDebug)
		if settings.Logging.Console != nil {
			settings.Logging.Console.Level = string(logger.LogLevelDebug)
		}
	}

	centralLogger, err := logger.NewCentralLogger(&settings.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error initializing logger: %v\n", err)
		return 1
	}
	logger.SetGlobal(centralLogger)
	defer func() { _ = centralLogger.Close() }()

	info := buildinfo.NewContext(version, buildDate)

	if err := telemetry.InitSentry(settings, info, centralLogger.Module("telemetry")); err != nil {
		// telemetry is optional, keep going without it
		centralLogger.Module("telemetry").Warn("failed to initialize telemetry", logger.Error(err))
	}
	defer telemetry.Flush()

	appCtx, err := config.NewContext(settings, centralLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	appCtx.BuildInfo = info

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.RootCommand(appCtx).ExecuteContext(ctx); err != nil {
		errors.Report(err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
