// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/shelfwatch/harvest/internal/config"
	"github.com/shelfwatch/harvest/internal/metrics"
	"github.com/shelfwatch/harvest/internal/renderer"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	Metrics   *metrics.Metrics
	Session   *renderer.Session
	sessionMu sync.Mutex
	startTime time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the Prometheus metrics registry
//
// The browser session is not started here; it is created lazily via
// EnsureSession so commands that never render (like `pages`) stay cheap.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	// Initialize logger based on config
	logLevel := zerolog.ErrorLevel // default: suppress non-verbose info logs
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	// Treat "info" as non-verbose (don't display info logs unless -v is used)
	default:
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		// JSON logs to stderr
		logWriter = os.Stderr
	} else {
		// Human-friendly console output otherwise
		logWriter = zerolog.NewConsoleWriter()
	}

	if cfg.LogFile != "" {
		// The rotated file always receives the raw JSON events, whatever
		// the console format is.
		fileSink := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    config.DefaultLogMaxSizeMB,
			MaxBackups: config.DefaultLogMaxBackups,
			MaxAge:     config.DefaultLogMaxAgeDays,
			Compress:   true,
		}
		logWriter = zerolog.MultiLevelWriter(logWriter, fileSink)
	}

	// Route the global logger through the configured sinks so every
	// package logs consistently.
	log.Logger = log.Output(logWriter).With().Timestamp().Logger()
	logger := log.Logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Str("file", cfg.LogFile).
		Msg("Logger initialized")

	// Create metrics registry
	m := metrics.New()
	logger.Debug().Msg("Metrics registry initialized")

	app := &Application{
		Config:    cfg,
		Logger:    &logger,
		Metrics:   m,
		startTime: time.Now(),
	}

	logger.Info().Msg("Application initialized successfully")
	return app, nil
}

// EnsureSession lazily starts the shared browser session if it has not
// already been created. Callers should provide a context with an appropriate
// timeout.
func (a *Application) EnsureSession(ctx context.Context) error {
	if a == nil {
		return fmt.Errorf("application is nil")
	}

	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()

	if a.Session != nil {
		return nil
	}

	logger := a.Logger
	logger.Debug().Msg("Starting browser session on demand")
	session, err := renderer.NewSession(renderer.Options{
		Headless:      a.Config.Headless,
		ChromePath:    a.Config.ChromePath,
		UserAgent:     a.Config.UserAgent,
		NavTimeout:    a.Config.NavTimeout,
		WaitTimeout:   a.Config.WaitTimeout,
		ClickInterval: a.Config.ClickInterval,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to start browser session")
		return err
	}

	a.Session = session
	logger.Info().Bool("headless", a.Config.Headless).Msg("Browser session started")
	return nil
}

// Close gracefully shuts down the application and all its resources.
//
// The browser session, if one was started, is closed here and nowhere else,
// so it happens exactly once regardless of how many pages failed during the
// run. Any errors during shutdown are logged but do not prevent other
// shutdown steps.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Info().Msg("Shutting down application")

	if a.Session != nil {
		if err := a.Session.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing browser session")
		}
	}

	uptime := time.Since(a.startTime)
	a.Logger.Info().Dur("uptime", uptime).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
