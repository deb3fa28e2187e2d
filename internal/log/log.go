package log

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var defaultLogger = zap.NewNop()

func Get() *zap.Logger {
	return defaultLogger
}

// Options mirror the log section of the configuration file.
type Options struct {
	Enabled bool
	Path    string
	Verbose bool
}

// New builds a logger. A disabled logger discards everything.
func New(opts Options) (*zap.Logger, error) {
	if !opts.Enabled {
		return zap.NewNop(), nil
	}

	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(zap.InfoLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	if opts.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.Development = true
		cfg.Sampling = nil
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	if opts.Path != "" {
		cfg.OutputPaths = []string{opts.Path}
		cfg.ErrorOutputPaths = []string{opts.Path}
	}

	l, err := cfg.Build()
	return l, errors.WithStack(err)
}

// Configure replaces the package logger returned by Get.
func Configure(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	defaultLogger = l
	return nil
}

func Flush() {
	_ = defaultLogger.Sync()
}
