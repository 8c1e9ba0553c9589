package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/arthur-debert/droidgen/pkg/errors"
)

// isolate points the user config at a path that does not exist
func isolate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv(EnvConfigPath, path)
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"staging", "production"}, cfg.Generate.Flavors)
	assert.Equal(t, "environment", cfg.Generate.FlavorDimension)
	assert.Empty(t, cfg.Generate.DisableRibbonFlavors)
	assert.Empty(t, cfg.Generate.DisableRibbonVariants)
	assert.Empty(t, cfg.Generate.TemplatesDir)
	assert.Equal(t, []string{"data", "domain", "presentation", "di", "core"}, cfg.Layout.Layers)
	assert.Equal(t, []string{"gradlew"}, cfg.Layout.ExecutableFiles)
	assert.Equal(t, os.FileMode(0755), cfg.Permissions.Directory)
	assert.Equal(t, os.FileMode(0644), cfg.Permissions.File)
	assert.Equal(t, os.FileMode(0755), cfg.Permissions.Executable)
}

func TestLoad(t *testing.T) {
	t.Run("defaults_without_user_file", func(t *testing.T) {
		isolate(t)

		cfg, err := Load(nil)
		require.NoError(t, err)

		def, err := Default()
		require.NoError(t, err)
		assert.Equal(t, def, cfg)
	})

	t.Run("user_file_replaces_lists", func(t *testing.T) {
		path := isolate(t)
		require.NoError(t, os.WriteFile(path, []byte(`
[generate]
flavors = ["dev"]
flavor_dimension = "tier"

[layout]
layers = ["data", "ui"]
`), 0644))

		cfg, err := Load(nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"dev"}, cfg.Generate.Flavors)
		assert.Equal(t, "tier", cfg.Generate.FlavorDimension)
		assert.Equal(t, []string{"data", "ui"}, cfg.Layout.Layers)
		// untouched keys keep their defaults
		assert.Equal(t, []string{"gradlew"}, cfg.Layout.ExecutableFiles)
	})

	t.Run("malformed_user_file", func(t *testing.T) {
		path := isolate(t)
		require.NoError(t, os.WriteFile(path, []byte("[generate\nflavors = "), 0644))

		_, err := Load(nil)
		require.Error(t, err)
		assert.True(t, derrors.IsErrorCode(err, derrors.ErrConfigLoad))
		assert.Equal(t, path, derrors.GetErrorDetails(err)["path"])
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		path := isolate(t)
		require.NoError(t, os.WriteFile(path, []byte(`
[generate]
flavor_dimension = "tier"
`), 0644))
		t.Setenv("DROIDGEN_GENERATE__FLAVOR_DIMENSION", "market")
		t.Setenv("DROIDGEN_GENERATE__FLAVORS", "free, paid,")

		cfg, err := Load(nil)
		require.NoError(t, err)

		assert.Equal(t, "market", cfg.Generate.FlavorDimension)
		assert.Equal(t, []string{"free", "paid"}, cfg.Generate.Flavors)
	})

	t.Run("overrides_win", func(t *testing.T) {
		isolate(t)
		t.Setenv("DROIDGEN_GENERATE__FLAVOR_DIMENSION", "market")

		cfg, err := Load(map[string]interface{}{
			"generate.flavor_dimension":       "override",
			"generate.disable_ribbon_flavors": []string{"production"},
		})
		require.NoError(t, err)

		assert.Equal(t, "override", cfg.Generate.FlavorDimension)
		assert.Equal(t, []string{"production"}, cfg.Generate.DisableRibbonFlavors)
	})

	t.Run("zero_permissions_rejected", func(t *testing.T) {
		isolate(t)

		_, err := Load(map[string]interface{}{"permissions.file": 0})
		require.Error(t, err)
		assert.True(t, derrors.IsErrorCode(err, derrors.ErrConfigLoad))
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "generate.flavor_dimension", envKey("DROIDGEN_GENERATE__FLAVOR_DIMENSION"))
	assert.Equal(t, "layout.layers", envKey("DROIDGEN_LAYOUT__LAYERS"))
	assert.Equal(t, "", envKey(EnvConfigPath))
}

func TestGenerateTOML(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	out, err := GenerateTOML(cfg)
	require.NoError(t, err)

	var back Config
	require.NoError(t, gotoml.Unmarshal(out, &back))
	assert.Equal(t, cfg.Generate.Flavors, back.Generate.Flavors)
	assert.Equal(t, cfg.Generate.FlavorDimension, back.Generate.FlavorDimension)
	assert.Equal(t, cfg.Layout.Layers, back.Layout.Layers)
	assert.Equal(t, cfg.Permissions, back.Permissions)
	assert.Contains(t, string(out), "[generate]")
}

func TestUserConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", UserConfigPath())

	t.Setenv(EnvConfigPath, "")
	assert.True(t, strings.HasSuffix(UserConfigPath(), filepath.Join("droidgen", "config.toml")))
}
