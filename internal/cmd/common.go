package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flashresume/flashresume/internal/catalog"
	"github.com/flashresume/flashresume/internal/config"
	"github.com/flashresume/flashresume/internal/log"
	"github.com/flashresume/flashresume/pkg/document"
	"github.com/flashresume/flashresume/pkg/document/editor"
	"github.com/flashresume/flashresume/pkg/document/identity"
	"github.com/flashresume/flashresume/pkg/theme"
)

const configName = "flashresume"

var cfg = config.Defaults()

func setup() error {
	var err error

	if fConfigFile != "" {
		var data []byte
		data, err = os.ReadFile(resolvePath(fConfigFile))
		if err != nil {
			return errors.Wrapf(err, "failed to read config %q", fConfigFile)
		}
		cfg, err = config.ParseYAML(data)
		if err != nil {
			return errors.Wrapf(err, "failed to parse config %q", fConfigFile)
		}
	} else {
		cfg, err = config.NewLoader(configName, "yaml", os.DirFS(fChdir)).Load()
		if err != nil {
			return err
		}
	}

	return log.Configure(log.Options{
		Enabled: cfg.LogEnabled,
		Path:    cfg.LogPath,
		Verbose: cfg.LogVerbose,
	})
}

func resolvePath(name string) string {
	if name == "-" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(fChdir, name)
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "failed to read from stdin")
	}

	data, err := os.ReadFile(resolvePath(name))
	return data, errors.Wrapf(err, "failed to read file %q", name)
}

// writeOutput replaces the file when write is set and prints to stdout
// otherwise.
func writeOutput(cmd *cobra.Command, name string, data []byte, write bool) error {
	if !write || name == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return errors.Wrap(err, "failed to write result")
	}

	path := resolvePath(name)
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	return errors.Wrapf(os.WriteFile(path, data, mode), "failed to write file %q", name)
}

func newStore(logger *zap.Logger) (*editor.Store, error) {
	strategy, err := identity.ParseStrategy(cfg.Identity)
	if err != nil {
		return nil, err
	}

	return editor.NewStore(
		editor.WithIdentityResolver(identity.NewResolver(strategy)),
		editor.WithLogger(logger),
	), nil
}

func loadStore(cmd *cobra.Command, name string) (*editor.Store, error) {
	data, err := readInput(cmd, name)
	if err != nil {
		return nil, err
	}

	store, err := newStore(log.Get())
	if err != nil {
		return nil, err
	}

	store.ReparseFromText(string(data))

	return store, nil
}

func themeName() string {
	if fThemeName != "" {
		return fThemeName
	}
	return cfg.DefaultTheme
}

func themesDir() string {
	return resolvePath(cfg.ThemesDir)
}

// loadCatalog fails only when the themes directory cannot be read. Invalid
// themes are logged and kept.
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	logger := log.Get()

	c, err := catalog.Load(ctx, os.DirFS(themesDir()), catalog.WithLogger(logger))
	if c == nil {
		return nil, err
	}
	if err != nil {
		logger.Info("some themes are invalid", zap.Error(err))
	}
	return c, nil
}

// loadDescriptor returns nil when the theme cannot be resolved, which
// treats every kind as supported.
func loadDescriptor(ctx context.Context) *theme.Descriptor {
	name := themeName()
	if name == "" {
		return nil
	}

	c, err := loadCatalog(ctx)
	if err != nil {
		log.Get().Info("theme catalog unavailable", zap.String("dir", themesDir()), zap.Error(err))
		return nil
	}

	return c.Descriptor(name)
}

// blockAt returns the block at position index within a section.
func blockAt(store *editor.Store, sectionID string, index int) (*document.Block, error) {
	if _, ok := store.Schema().Section(document.SectionID(sectionID)); !ok {
		return nil, errors.Wrapf(editor.ErrUnknownSection, "section %q", sectionID)
	}

	blocks := store.Section(document.SectionID(sectionID))
	if index < 0 || index >= len(blocks) {
		return nil, errors.Errorf("section %q has no block at index %d", sectionID, index)
	}
	return blocks[index], nil
}
