package app

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/vk/efgscan/internal/ctxlog"
	"github.com/vk/efgscan/internal/metrics"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	metrics *metrics.Recorder
}

// NewApp builds an App. Documents written to "-", reports and lexicon dumps
// go to outW; logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:    &lockedWriter{w: outW},
		logger:  logger,
		config:  cfg,
		metrics: metrics.New(),
	}
}

// Metrics returns the run's recorder. This is primarily for testing.
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	ctx = ctxlog.WithLogger(ctx, a.logger.With("run_id", runID))
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.", "command", a.config.Command)

	var err error
	switch a.config.Command {
	case CommandLexicon:
		return a.DumpLexicon(ctx)
	case CommandBatch:
		err = a.RunBatch(ctx)
	default:
		err = a.RunScan(ctx)
	}

	if a.config.MetricsPath != "" {
		if werr := a.metrics.WriteTextfile(a.config.MetricsPath); werr != nil {
			logger.Error("Failed to write metrics textfile.", "path", a.config.MetricsPath, "error", werr)
		} else {
			logger.Debug("Metrics written.", "path", a.config.MetricsPath)
		}
	}
	logger.Debug("App.Run method finished.")
	return err
}

// lockedWriter serialises writes from concurrent batch analyses.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
