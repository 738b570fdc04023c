package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/aleister1102/geoprobe/internal/config"
	"github.com/aleister1102/geoprobe/internal/logger"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitCancelled = 130
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := ParseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] Could not load config using path '%s': %v\n", flags.GlobalConfigFile, err)
		return exitUsage
	}
	flags.Apply(gCfg)

	if err := config.ValidateConfig(gCfg); err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		return exitUsage
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] Could not initialize logger: %v\n", err)
		return exitFailure
	}
	zLogger.Debug().Str("mode", gCfg.Mode).Msg("Configuration loaded and validated")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, stopping after in-flight probes...")
			cancel()
		case <-ctx.Done():
		}
	}()

	a, err := newApp(gCfg, zLogger, os.Stdout)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to initialize")
		if common.IsInputError(err) {
			return exitUsage
		}
		return exitFailure
	}
	defer func() {
		if err := a.Close(); err != nil {
			zLogger.Warn().Err(err).Msg("Failed to close run history")
		}
	}()

	if gCfg.Mode == config.ModeInteractive {
		runInteractive(ctx, os.Stdin, os.Stdout, a, gCfg.TargetURL)
		return exitOK
	}
	return runOnetime(ctx, a, gCfg.TargetURL)
}

func runOnetime(ctx context.Context, a *app, targetURL string) int {
	if targetURL == "" {
		a.logger.Error().Msg("A target URL is required in onetime mode (-url)")
		return exitUsage
	}

	report, err := a.run(ctx, targetURL)
	if err != nil {
		a.logger.Error().Err(err).Str("target_url", targetURL).Msg("Run aborted")
		if common.IsInputError(err) {
			return exitUsage
		}
		return exitFailure
	}
	if report.Cancelled {
		return exitCancelled
	}
	return exitOK
}
