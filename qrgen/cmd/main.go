package main

import (
	"context"
	"net/http"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"

	"github.com/qrforge/qr-api/internal/config"
	"github.com/qrforge/qr-api/internal/httputil"
	"github.com/qrforge/qr-api/internal/log"
	"github.com/qrforge/qr-api/internal/otel"
	"github.com/qrforge/qr-api/internal/workflow"
	"github.com/qrforge/qr-api/qrgen"
	"github.com/qrforge/qr-api/qrgen/render"
	"github.com/qrforge/qr-api/qrgen/transport"
)

const fallbackDataDir = "/tmp/logs"

type Config struct {
	App  config.App      `mapstructure:"app"`
	Http httputil.Config `mapstructure:"http"`
	Otel otel.Config     `mapstructure:"otel"`
	QR   qrgen.Config    `mapstructure:"qr"`
}

func loadConfig() (*Config, error) {
	return config.Load(&Config{}, func(v *viper.Viper) {
		config.Setup(v, "app")
		otel.Setup(v, "otel")
		httputil.Setup(v, "http")
		qrgen.Setup(v, "qr")

		v.SetDefault("http.addr", "0.0.0.0:8080")
	})
}

// ensureDataDir creates the configured data directory, falling back to
// /tmp/logs when it cannot be created. Never fatal; the service still
// renders without it, the health report just flags it.
func ensureDataDir(dir string, logger *log.Logger) string {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("Failed to create data directory, falling back",
			log.String("dir", dir),
			log.String("fallback", fallbackDataDir),
			log.Error(err),
		)
		dir = fallbackDataDir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("Failed to create fallback data directory", log.Error(err))
		}
	}
	return dir
}

func main() {
	config, err := loadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", err)
	}

	logger, err := log.NewLogger(config.App.LogConfigFile)
	if err != nil {
		log.Fatal("Failed to create logger", err)
	}
	defer logger.Sync()

	// global background context
	ctx := context.Background()

	// Initialize OpenTelemetry
	otelShutdown, err := otel.Init(ctx, &config.Otel, logger)
	if err != nil {
		logger.Fatal("Failed to initialize OTEL provider", log.Error(err))
	}

	logger.Info("Starting QR Service...")

	dataDir := ensureDataDir(config.App.DataDir, logger)

	renderer := render.New(logger)
	health := transport.NewHealthChecker(renderer, dataDir, clockwork.NewRealClock(), logger)
	router := transport.NewRouter(renderer, &config.QR, health, logger)
	server := httputil.NewServer(&config.Http, router.Handler())

	// Start HTTP server in goroutine
	go func() {
		logger.Info("Starting REST API server", log.String("addr", config.Http.Addr))
		if err := server.Listen(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start REST API server", log.Error(err))
		}
	}()

	// Graceful shutdown
	cleanup := func(ctx context.Context) {
		server.Shutdown(ctx)

		if err := otelShutdown(ctx); err != nil {
			logger.Error("Failed to shutdown OTEL", log.Error(err))
		}
	}
	workflow.WaitGracefulShutdown(ctx, logger.Module("CleanUp"), cleanup, config.App.ShutdownTimeout)
}
