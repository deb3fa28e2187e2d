package config

var (
	defaults     Config
	defaultsYAML = []byte(`version: v1alpha1

themes:
  # Directory holding one subdirectory per theme. Each theme carries
  # conf.json, conf.yaml or conf.toml next to its main file.
  dir: "themes"
  # Theme used by "check", "splice" and "compile" when --theme is not set.
  default: "basic"

compiler:
  # The input and output paths are appended to the command.
  command: "typst compile"
  min_version: "0.11.0"
  timeout: "30s"

log:
  enabled: false
  path: "/tmp/flashresume.log"
  verbose: false

editor:
  # How new blocks are identified: "ulid" or "sequential".
  identity: "ulid"
`)
)

func init() {
	cfg, err := parseYAML(defaultsYAML, nil)
	if err != nil {
		panic(err)
	}

	defaults = *cfg
}

// Defaults returns a copy of the built-in configuration.
func Defaults() *Config {
	cfg := defaults
	return &cfg
}
