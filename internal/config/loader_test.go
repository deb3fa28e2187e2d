package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewLoader(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		NewLoader("", "yaml", fstest.MapFS{})
	}, "config name is not set")
}

func TestLoader_RootConfig(t *testing.T) {
	t.Parallel()

	t.Run("without root config", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{}
		loader := NewLoader("flashresume", "yaml", fsys, WithLogger(zaptest.NewLogger(t)))
		result, err := loader.RootConfig()
		require.ErrorIs(t, err, ErrRootConfigNotFound)
		require.Nil(t, result)
	})

	t.Run("with root config", func(t *testing.T) {
		t.Parallel()

		data := []byte("version: v1alpha1\n")
		fsys := fstest.MapFS{
			"flashresume.yaml": {
				Data: data,
			},
		}
		loader := NewLoader("flashresume", "yaml", fsys, WithLogger(zaptest.NewLogger(t)))
		result, err := loader.RootConfig()
		require.NoError(t, err)
		require.Equal(t, data, result)
	})
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		loader := NewLoader("flashresume", "yaml", fstest.MapFS{}, WithLogger(zaptest.NewLogger(t)))
		cfg, err := loader.Load()
		require.NoError(t, err)
		require.Equal(t, Defaults(), cfg)
	})

	t.Run("root config", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"flashresume.yaml": {
				Data: []byte("version: v1alpha1\nthemes:\n  default: modern\n"),
			},
		}
		loader := NewLoader("flashresume", "yaml", fsys, WithLogger(zaptest.NewLogger(t)))
		cfg, err := loader.Load()
		require.NoError(t, err)
		require.Equal(t, "modern", cfg.DefaultTheme)
		require.Equal(t, "themes", cfg.ThemesDir)
	})

	t.Run("invalid root config", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"flashresume.yaml": {
				Data: []byte("version: v1alpha1\neditor:\n  identity: random\n"),
			},
		}
		loader := NewLoader("flashresume", "yaml", fsys, WithLogger(zaptest.NewLogger(t)))
		_, err := loader.Load()
		require.ErrorContains(t, err, "failed to parse flashresume.yaml")
	})
}
