package config

import (
	"io/fs"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrRootConfigNotFound = errors.New("root configuration file not found")

// Loader allows to load configuration files from a file system.
type Loader struct {
	// configRootPath is a root path for the configuration file.
	// Typically, it's the current working directory.
	configRootPath fs.FS

	// configName is a name of the configuration file.
	configName string

	// configType is a type of the configuration file.
	// Together with configName it forms a configFile.
	configType string

	logger *zap.Logger
}

type LoaderOption func(*Loader)

func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

func NewLoader(configName, configType string, configRootPath fs.FS, opts ...LoaderOption) *Loader {
	if configName == "" {
		panic("config name is not set")
	}

	l := &Loader{
		configRootPath: configRootPath,
		configName:     configName,
		configType:     configType,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = zap.NewNop()
	}

	return l
}

func (l *Loader) configFullName() string {
	if l.configType == "" {
		return l.configName
	}
	return l.configName + "." + l.configType
}

func (l *Loader) RootConfig() ([]byte, error) {
	data, err := fs.ReadFile(l.configRootPath, l.configFullName())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.WithStack(err)
		}
		return nil, ErrRootConfigNotFound
	}
	return data, nil
}

// Load parses the root configuration file. Without one, the defaults are
// returned.
func (l *Loader) Load() (*Config, error) {
	data, err := l.RootConfig()
	if errors.Is(err, ErrRootConfigNotFound) {
		l.logger.Debug("root configuration file not found, using defaults", zap.String("name", l.configFullName()))
		return Defaults(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg, err := ParseYAML(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", l.configFullName())
	}

	l.logger.Debug("loaded configuration", zap.String("name", l.configFullName()))

	return cfg, nil
}
