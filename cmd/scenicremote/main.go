package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scenic-remote/driver/internal/config"
	driverpkg "github.com/scenic-remote/driver/internal/driver"
	"github.com/scenic-remote/driver/internal/hostfake"
	"github.com/scenic-remote/driver/internal/ops"
)

var version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve", "start":
		serve()
	case "version":
		fmt.Printf("scenicremote v%s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func serve() {
	cfgPath := "scenicremote.yaml"
	if len(os.Args) > 2 {
		cfgPath = os.Args[2]
	}

	logger, startupCloser := setupLogger("info", "json", "stdout")
	if startupCloser != nil {
		defer startupCloser.Close()
	}
	logger.Info("scenicremote driver starting", "version", version)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "path", cfgPath, "error", err)
		os.Exit(1)
	}

	if startupCloser != nil {
		_ = startupCloser.Close()
		startupCloser = nil
	}
	logger, logCloser := setupLogger(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if logCloser != nil {
		defer logCloser.Close()
	}

	// No scene-graph framework is embedded in this binary — the host
	// side is an external collaborator (see internal/host). The demo
	// scene here exists so the driver has something to resync and
	// exercises the full engine end to end.
	scene := hostfake.NewScene()
	assets := hostfake.NewAssetStore()
	input := hostfake.NewInputSink()

	drv := driverpkg.New(cfg.Driver, scene, assets, input, logger)

	ctx, cancel := context.WithCancel(context.Background())
	drv.Start(ctx)

	var opsServer *ops.Server
	if cfg.Observability.Enabled {
		opsServer = ops.New(cfg.Observability.Address, drv, logger)
		go func() {
			if err := opsServer.Start(); err != nil && err != http.ErrServerClosed {
				logger.Error("ops endpoint error", "error", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("scenicremote driver ready", "transport", cfg.Driver.Transport)

	<-quit
	logger.Info("shutdown signal received")

	cancel()
	drv.Stop()

	if opsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := opsServer.Stop(shutdownCtx); err != nil {
			logger.Error("ops endpoint shutdown error", "error", err)
		}
		shutdownCancel()
	}

	logger.Info("scenicremote driver stopped")
}

func setupLogger(level, format, output string) (*slog.Logger, io.Closer) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	writer, closer := resolveLogOutput(output)
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	return slog.New(handler), closer
}

func resolveLogOutput(output string) (io.Writer, io.Closer) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return os.Stdout, nil
		}
		return f, f
	}
}

func printUsage() {
	fmt.Println(`scenicremote - scene-graph remote rendering driver

Usage:
  scenicremote <command> [options]

Commands:
  serve [config]   Start the driver (default config: scenicremote.yaml)
  start [config]   Alias for serve
  version          Show version
  help             Show this help

Signals:
  SIGINT/SIGTERM   Graceful shutdown

Examples:
  scenicremote serve
  scenicremote serve /etc/scenicremote/scenicremote.yaml
  scenicremote version`)
}
