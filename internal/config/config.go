package config

import (
	"bytes"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is a uniform configuration structure for flashresume.
// It should unify all past, current, and future config file versions.
type Config struct {
	// Theme related fields.
	ThemesDir    string `validate:"required"`
	DefaultTheme string

	// Compiler related fields.
	CompilerCommand    string        `validate:"required"`
	CompilerMinVersion string        `validate:"omitempty,semver"`
	CompilerTimeout    time.Duration `validate:"gt=0"`

	// Log related fields.
	LogEnabled bool
	LogPath    string
	LogVerbose bool

	// Editor related fields.
	Identity string `validate:"oneof=ulid sequential"`
}

type configV1alpha1 struct {
	Version string `yaml:"version"`
	Themes  struct {
		Dir     string `yaml:"dir"`
		Default string `yaml:"default"`
	} `yaml:"themes"`
	Compiler struct {
		Command    string `yaml:"command"`
		MinVersion string `yaml:"min_version"`
		Timeout    string `yaml:"timeout"`
	} `yaml:"compiler"`
	Log struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
		Verbose bool   `yaml:"verbose"`
	} `yaml:"log"`
	Editor struct {
		Identity string `yaml:"identity"`
	} `yaml:"editor"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseYAML parses a configuration file. Fields missing from data keep
// their default values.
func ParseYAML(data []byte) (*Config, error) {
	return parseYAML(data, defaultsYAML)
}

func parseYAML(data, base []byte) (*Config, error) {
	version, err := parseVersionFromYAML(data)
	if err != nil {
		return nil, err
	}
	switch version {
	case "v1alpha1":
		var cfg configV1alpha1

		if base != nil {
			if err := decodeYAMLStrict(base, &cfg); err != nil {
				return nil, errors.Wrap(err, "failed to decode default config")
			}
		}
		if err := decodeYAMLStrict(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to decode v1alpha1 config")
		}

		config, err := configV1alpha1ToConfig(&cfg)
		if err != nil {
			return nil, err
		}

		if err := validate.Struct(config); err != nil {
			return nil, errors.Wrap(err, "failed to validate config")
		}

		return config, nil
	default:
		return nil, errors.Errorf("unknown version: %q", version)
	}
}

type versionOnly struct {
	Version string `yaml:"version"`
}

func parseVersionFromYAML(data []byte) (string, error) {
	var result versionOnly

	if err := yaml.Unmarshal(data, &result); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal version")
	}

	return result.Version, nil
}

func decodeYAMLStrict(data []byte, v any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return errors.WithStack(decoder.Decode(v))
}

func configV1alpha1ToConfig(c *configV1alpha1) (*Config, error) {
	var timeout time.Duration
	if c.Compiler.Timeout != "" {
		var err error
		timeout, err = time.ParseDuration(c.Compiler.Timeout)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid compiler timeout %q", c.Compiler.Timeout)
		}
	}

	return &Config{
		ThemesDir:    c.Themes.Dir,
		DefaultTheme: c.Themes.Default,

		CompilerCommand:    c.Compiler.Command,
		CompilerMinVersion: c.Compiler.MinVersion,
		CompilerTimeout:    timeout,

		LogEnabled: c.Log.Enabled,
		LogPath:    c.Log.Path,
		LogVerbose: c.Log.Verbose,

		Identity: c.Editor.Identity,
	}, nil
}
