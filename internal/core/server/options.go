package server

import (
	"time"

	"github.com/kyoto-db/kyoto/internal/server/config"
	"github.com/kyoto-db/kyoto/internal/storage"
	"github.com/kyoto-db/kyoto/internal/telemetry/logger"
)

// Recorder receives per-command measurements.
// *metric.Registry satisfies it.
type Recorder interface {
	ObserveCommand(command, result string, d time.Duration)
	ObserveInvalidFlow()
}

type nopRecorder struct{}

func (nopRecorder) ObserveCommand(string, string, time.Duration) {}
func (nopRecorder) ObserveInvalidFlow()                          {}

// Option configures a Server.
type Option func(*options)

type options struct {
	cfg      *config.ServerConfig
	engine   storage.Engine
	logger   logger.Logger
	recorder Recorder
}

// WithConfig sets the server configuration.
// The storage section is used unless WithEngine is also given.
func WithConfig(cfg *config.ServerConfig) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithEngine sets the storage engine.
func WithEngine(engine storage.Engine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRecorder sets the command recorder.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}
