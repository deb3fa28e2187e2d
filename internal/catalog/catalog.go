// Package catalog discovers themes on a file system.
//
// A theme is a directory holding a configuration file (conf.json,
// conf.yaml or conf.toml) and a main markup file. Directories starting
// with a dot are ignored.
package catalog

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/flashresume/flashresume/pkg/theme"
)

var (
	ErrThemeNotFound  = errors.New("theme not found")
	ErrConfigNotFound = errors.New("theme configuration not found")
)

const loadConcurrency = 8

// Theme is a catalog entry. Descriptor is never nil; a theme without a
// usable configuration has a descriptor without functions.
type Theme struct {
	Name       string
	Dir        string
	ConfigFile string
	Descriptor *theme.Descriptor
	// Err is set when the configuration is missing or invalid.
	Err error
}

type Catalog struct {
	fsys   fs.FS
	logger *zap.Logger
	themes []*Theme
	byName map[string]*Theme
}

type Option func(*Catalog)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// Load reads every theme directory at the root of fsys. Themes with
// invalid configuration are kept in the catalog; their errors are
// combined into the returned error.
func Load(ctx context.Context, fsys fs.FS, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		fsys:   fsys,
		byName: make(map[string]*Theme),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read themes directory")
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, entry.Name())
	}

	themes := make([]*Theme, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)

	for i, dir := range dirs {
		i, dir := i, dir

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			themes[i] = loadTheme(fsys, dir)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}

	var result error
	for _, t := range themes {
		if t.Err != nil {
			c.logger.Warn("invalid theme configuration", zap.String("theme", t.Name), zap.Error(t.Err))
			if !errors.Is(t.Err, ErrConfigNotFound) {
				result = multierr.Append(result, t.Err)
			}
		}
		c.byName[t.Name] = t
	}

	sort.Slice(themes, func(i, j int) bool {
		return themes[i].Name < themes[j].Name
	})
	c.themes = themes

	c.logger.Debug("loaded theme catalog", zap.Int("themes", len(themes)))

	return c, result
}

// Get returns a theme with a valid configuration.
func (c *Catalog) Get(name string) (*Theme, error) {
	t, ok := c.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrThemeNotFound, "theme %q", name)
	}
	if t.Err != nil {
		return nil, t.Err
	}
	return t, nil
}

// Descriptor returns the capability descriptor of a theme or nil when the
// theme is unknown or has no valid configuration.
func (c *Catalog) Descriptor(name string) *theme.Descriptor {
	t, err := c.Get(name)
	if err != nil {
		c.logger.Debug("no descriptor for theme", zap.String("theme", name), zap.Error(err))
		return nil
	}
	return t.Descriptor
}

// List returns themes whose names match any of the glob patterns, or all
// themes when no pattern is given.
func (c *Catalog) List(patterns ...string) ([]*Theme, error) {
	if len(patterns) == 0 {
		return append([]*Theme(nil), c.themes...), nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
		}
		globs = append(globs, g)
	}

	var result []*Theme
	for _, t := range c.themes {
		for _, g := range globs {
			if g.Match(t.Name) {
				result = append(result, t)
				break
			}
		}
	}
	return result, nil
}

// MainContent returns the main markup file of a theme.
func (c *Catalog) MainContent(name string) ([]byte, error) {
	t, err := c.Get(name)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(c.fsys, path.Join(t.Dir, t.Descriptor.MainFile))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read main file of theme %q", name)
	}
	return data, nil
}
