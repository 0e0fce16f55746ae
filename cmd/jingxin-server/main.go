// JingXin analysis service - turns streamed perception frames into
// calibrated affect and readiness estimates over HTTP and websockets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/huihuibuhui227-svg/JingXin/internal/config"
	"github.com/huihuibuhui227-svg/JingXin/internal/log"
	"github.com/huihuibuhui227-svg/JingXin/pkg/report"
	"github.com/huihuibuhui227-svg/JingXin/pkg/session"
	"github.com/huihuibuhui227-svg/JingXin/pkg/web"
)

func main() {
	if err := run(); err != nil {
		log.Error("jingxin-server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	app, err := config.Load()
	if err != nil {
		return err
	}

	// Flags override the environment.
	port := flag.String("port", app.Port, "HTTP listen port")
	dataDir := flag.String("data-dir", app.DataDir, "directory for persisted session reports")
	logLevel := flag.String("log-level", app.LogLevel, "log level: debug, info, warn, error")
	flag.Parse()
	app.Port, app.DataDir, app.LogLevel = *port, *dataDir, *logLevel

	log.Init(app.LogLevel)

	store, err := report.NewJSONStore(app.ReportsPath())
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}

	cfg := session.DefaultConfig()
	cfg.Face.TickRate = app.TickRate

	server := web.NewServer(app.Port, session.NewRegistry(cfg), store)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- server.Start() }()

	select {
	case <-ctx.Done():
		log.Info("shutting down", "reason", "signal")
		return server.Shutdown()
	case err := <-errc:
		return err
	}
}
