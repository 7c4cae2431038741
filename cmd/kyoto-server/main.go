package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	core "github.com/kyoto-db/kyoto/internal/core/server"
	"github.com/kyoto-db/kyoto/internal/infra/buildinfo"
	"github.com/kyoto-db/kyoto/internal/infra/confloader"
	"github.com/kyoto-db/kyoto/internal/infra/shutdown"
	"github.com/kyoto-db/kyoto/internal/server/config"
	"github.com/kyoto-db/kyoto/internal/server/httpserver"
	"github.com/kyoto-db/kyoto/internal/server/localserver"
	"github.com/kyoto-db/kyoto/internal/telemetry/logger"
	"github.com/kyoto-db/kyoto/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func main() {
	app := &cli.App{
		Name:    "kyoto-server",
		Usage:   "Kyoto key-value server",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				EnvVars: []string{"KYOTO_CONFIG"},
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, c.String("config"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	info := buildinfo.Get()
	log.Info("starting kyoto-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", configFile)

	registry := metric.NewRegistry()
	srv, err := core.New(
		core.WithConfig(cfg),
		core.WithLogger(log),
		core.WithRecorder(registry),
	)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}
	registry.MustRegister(metric.NewCollector(srv.Engine()))

	log.Info("server initialized",
		"listen_addr", cfg.Server.ListenAddr(),
		"storage_engine", cfg.Storage.Engine)

	shutdownHandler := shutdown.NewHandler(shutdownTimeout)

	// Hooks run in reverse order of registration.
	if cfg.Server.MetricsAddr != "" {
		startAdminHTTP(cfg, srv, registry, log, shutdownHandler)
	}
	if cfg.Admin.SocketPath != "" {
		startLocalSocket(cfg, srv, log, shutdownHandler)
	}
	if configFile != "" {
		if err := watchConfig(configFile, log, shutdownHandler); err != nil {
			log.Warn("config watch disabled", "error", err)
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if ctx == nil {
		ctx = context.Background()
	}
	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	loader := confloader.NewLoader(confloader.WithConfigFile(configFile))
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and makes it the default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

func startAdminHTTP(cfg *config.ServerConfig, srv *core.Server, registry *metric.Registry, log logger.Logger, sh *shutdown.Handler) {
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Server:         srv,
		Metrics:        registry.Handler(),
		Logger:         log,
		AllowList:      cfg.Admin.AllowList,
		TrustedProxies: cfg.Admin.TrustedProxies,
		RateLimit:      cfg.Admin.RateLimit,
		AccessLog:      true,
	})
	httpServer := httpserver.New(cfg.Server.MetricsAddr, router)

	sh.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down admin HTTP server")
		return httpServer.Shutdown(ctx)
	})

	go func() {
		log.Info("admin HTTP server listening", "addr", cfg.Server.MetricsAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("admin HTTP server error", "error", err)
		}
	}()
}

func startLocalSocket(cfg *config.ServerConfig, srv *core.Server, log logger.Logger, sh *shutdown.Handler) {
	local := localserver.New(cfg.Admin.SocketPath, srv, log)

	sh.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down local socket")
		return local.Shutdown(ctx)
	})

	go func() {
		log.Info("local socket listening", "path", cfg.Admin.SocketPath)
		if err := local.ListenAndServe(); err != nil {
			log.Error("local socket error", "error", err)
		}
	}()
}

// watchConfig reapplies the log level whenever the config file changes.
// Other settings take effect on restart.
func watchConfig(path string, log logger.Logger, sh *shutdown.Handler) error {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return err
	}
	if err := watcher.Watch(path); err != nil {
		_ = watcher.Stop()
		return err
	}

	watcher.OnChange(func(changed string) {
		cfg, err := loadConfig(changed)
		if err != nil {
			log.Warn("config reload rejected", "path", changed, "error", err)
			return
		}
		previous := logger.GetLevel()
		logger.SetLevel(cfg.Log.Level)
		log.Info("config reloaded", "path", changed, "log_level", logger.GetLevel(), "previous_log_level", previous)
	})
	watcher.StartAsync()

	sh.OnShutdown(func(context.Context) error {
		return watcher.Stop()
	})
	return nil
}
