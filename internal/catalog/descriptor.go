package catalog

import (
	"encoding/json"
	"io/fs"
	"path"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/flashresume/flashresume/pkg/theme"
)

type unmarshalFunc func([]byte, any) error

// configFiles are tried in order; the first one present wins.
var configFiles = []struct {
	name      string
	unmarshal unmarshalFunc
}{
	{name: "conf.json", unmarshal: json.Unmarshal},
	{name: "conf.yaml", unmarshal: yaml.Unmarshal},
	{name: "conf.toml", unmarshal: toml.Unmarshal},
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func loadTheme(fsys fs.FS, dir string) *Theme {
	t := &Theme{
		Name:       dir,
		Dir:        dir,
		Descriptor: &theme.Descriptor{Name: dir, MainFile: theme.DefaultMainFile},
	}

	for _, cf := range configFiles {
		configPath := path.Join(dir, cf.name)

		data, err := fs.ReadFile(fsys, configPath)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		t.ConfigFile = cf.name

		if err != nil {
			t.Err = errors.Wrapf(err, "theme %q", dir)
			return t
		}

		descriptor, err := parseDescriptor(data, cf.unmarshal)
		if err != nil {
			t.Err = errors.Wrapf(err, "theme %q: invalid %s", dir, cf.name)
			return t
		}
		if _, err := fs.Stat(fsys, path.Join(dir, descriptor.MainFile)); err != nil {
			t.Err = errors.Errorf("theme %q: main file %q not found", dir, descriptor.MainFile)
			return t
		}

		t.Descriptor = descriptor
		return t
	}

	t.Err = errors.Wrapf(ErrConfigNotFound, "theme %q", dir)
	return t
}

func parseDescriptor(data []byte, unmarshal unmarshalFunc) (*theme.Descriptor, error) {
	var d theme.Descriptor
	if err := unmarshal(data, &d); err != nil {
		return nil, errors.WithStack(err)
	}

	if d.MainFile == "" {
		d.MainFile = theme.DefaultMainFile
	}

	if err := validate.Struct(&d); err != nil {
		return nil, errors.WithStack(err)
	}

	return &d, nil
}
