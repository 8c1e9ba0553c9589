package droidgen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/droidgen/internal/version"
	"github.com/arthur-debert/droidgen/pkg/config"
	derrors "github.com/arthur-debert/droidgen/pkg/errors"
	"github.com/arthur-debert/droidgen/pkg/prompt"
	"github.com/arthur-debert/droidgen/pkg/ui"
)

// testEnv isolates a test from the user's config and log locations and
// returns the directory projects are generated in
func testEnv(t *testing.T) (string, environment) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	return dir, environment{getwd: func() (string, error) { return dir, nil }}
}

func run(t *testing.T, env environment, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(env)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateWithoutFirebase(t *testing.T) {
	dir, env := testEnv(t)

	out, err := run(t, env, "", "com.example.myapp", "MyApp", "--no-firebase")
	require.NoError(t, err)

	projectDir := filepath.Join(dir, "MyApp")
	assert.Contains(t, out, "Generating project MyApp with package com.example.myapp...")
	assert.Contains(t, out, "Success! Created MyApp at "+projectDir)
	assert.Contains(t, out, "To get started:\ncd MyApp\n./gradlew assembleDebug\n")
	assert.NotContains(t, out, "google-services.json")

	assert.FileExists(t, filepath.Join(projectDir, "settings.gradle.kts"))
	assert.FileExists(t, filepath.Join(projectDir, "app", "src", "main", "java", "com", "example", "myapp", "MainActivity.kt"))
	build := readFile(t, filepath.Join(projectDir, "app", "build.gradle.kts"))
	assert.NotContains(t, build, "firebase")
	assert.Contains(t, build, `flavorDimensions += "environment"`)
	assert.Contains(t, build, `create("staging")`)
}

func TestGenerateWithFirebase(t *testing.T) {
	dir, env := testEnv(t)

	out, err := run(t, env, "", "com.example.myapp", "MyApp", "--firebase")
	require.NoError(t, err)

	appDir := filepath.Join(dir, "MyApp", "app")
	assert.Contains(t, out, "Don't forget to add your google-services.json to "+appDir)
	assert.Contains(t, readFile(t, filepath.Join(appDir, "build.gradle.kts")), "alias(libs.plugins.google.services)")
}

func TestFirebaseDefaultsToNoWithoutTerminal(t *testing.T) {
	dir, env := testEnv(t)

	out, err := run(t, env, "y\n", "com.example.myapp", "MyApp")
	require.NoError(t, err)

	assert.Contains(t, out, "Warning: Do you want to include Firebase dependencies? Not running interactively, answering no. Use --firebase to enable.")
	assert.NotContains(t, readFile(t, filepath.Join(dir, "MyApp", "app", "build.gradle.kts")), "firebase")
}

func TestFirebasePrompt(t *testing.T) {
	dir, env := testEnv(t)
	env.confirmer = func(cmd *cobra.Command, _ *ui.Printer) prompt.Confirmer {
		return prompt.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	out, err := run(t, env, "yes\n", "com.example.myapp", "MyApp")
	require.NoError(t, err)

	assert.Contains(t, out, "Do you want to include Firebase dependencies? [y/N]: ")
	assert.Contains(t, readFile(t, filepath.Join(dir, "MyApp", "app", "build.gradle.kts")), "firebase")
}

func TestFlavorFlags(t *testing.T) {
	dir, env := testEnv(t)

	_, err := run(t, env, "", "com.example.myapp", "MyApp", "--no-firebase",
		"--flavors", "dev, prod", "--flavor-dimension", "tier",
		"--disable-ribbon-flavors", "prod", "--disable-ribbon-variants", "release")
	require.NoError(t, err)

	build := readFile(t, filepath.Join(dir, "MyApp", "app", "build.gradle.kts"))
	assert.Contains(t, build, `flavorDimensions += "tier"`)
	assert.Contains(t, build, `create("dev") {`)
	assert.Contains(t, build, `create("prodRelease") {`)
	assert.NotContains(t, build, "staging")
}

func TestFlavorDimensionFromEnvironment(t *testing.T) {
	dir, env := testEnv(t)
	t.Setenv("DROIDGEN_GENERATE__FLAVOR_DIMENSION", "market")

	_, err := run(t, env, "", "com.example.myapp", "MyApp", "--no-firebase")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, filepath.Join(dir, "MyApp", "app", "build.gradle.kts")), `flavorDimensions += "market"`)
}

func TestEmptyFlavorFlagsKeepDefaults(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"empty flavors", []string{"--flavors", ""}},
		{"empty dimension", []string{"--flavor-dimension", ""}},
		{"blank dimension", []string{"--flavor-dimension", "  "}},
		{"both empty", []string{"--flavors", "", "--flavor-dimension", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, env := testEnv(t)

			args := append([]string{"com.example.myapp", "MyApp", "--no-firebase"}, tt.args...)
			_, err := run(t, env, "", args...)
			require.NoError(t, err)

			build := readFile(t, filepath.Join(dir, "MyApp", "app", "build.gradle.kts"))
			assert.Contains(t, build, `flavorDimensions += "environment"`)
			assert.Contains(t, build, `create("staging") {`)
			assert.Contains(t, build, `create("production") {`)
		})
	}
}

func TestSeparatorOnlyFlavorsClearsFlavors(t *testing.T) {
	dir, env := testEnv(t)

	_, err := run(t, env, "", "com.example.myapp", "MyApp", "--no-firebase", "--flavors", ",")
	require.NoError(t, err)

	build := readFile(t, filepath.Join(dir, "MyApp", "app", "build.gradle.kts"))
	assert.NotContains(t, build, `create("staging")`)
	assert.NotContains(t, build, `create("production")`)
}

func TestDryRun(t *testing.T) {
	dir, env := testEnv(t)

	out, err := run(t, env, "", "com.example.myapp", "MyApp", "--no-firebase", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "DRY RUN MODE - No changes were made.")
	assert.Contains(t, out, filepath.Join("MyApp", "app", "build.gradle.kts")+"\n")
	assert.NotContains(t, out, "Success!")
	assert.NoDirExists(t, filepath.Join(dir, "MyApp"))
}

func TestInvalidPackageName(t *testing.T) {
	dir, env := testEnv(t)

	for _, name := range []string{"Example", "com", "1com.example"} {
		out, err := run(t, env, "", name, "MyApp", "--no-firebase")
		require.Error(t, err)
		assert.True(t, derrors.IsErrorCode(err, derrors.ErrValidation))
		assert.Contains(t, err.Error(), "Invalid package name. It must follow Java package naming conventions.")
		assert.NotContains(t, out, "Generating")
	}
	assert.NoDirExists(t, filepath.Join(dir, "MyApp"))
}

func TestExistingDirectory(t *testing.T) {
	dir, env := testEnv(t)
	existing := filepath.Join(dir, "MyApp")
	require.NoError(t, os.Mkdir(existing, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(existing, "keep.txt"), []byte("mine"), 0644))

	out, err := run(t, env, "", "com.example.myapp", "MyApp", "--no-firebase")
	require.Error(t, err)
	assert.True(t, derrors.IsErrorCode(err, derrors.ErrValidation))
	assert.Contains(t, err.Error(), "Directory MyApp already exists.")
	assert.NotContains(t, out, "Generating")

	entries, err := os.ReadDir(existing)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUsageErrors(t *testing.T) {
	_, env := testEnv(t)

	_, err := run(t, env, "", "com.example.myapp")
	assert.Error(t, err)

	_, err = run(t, env, "", "com.example.myapp", "MyApp", "--firebase", "--no-firebase")
	assert.Error(t, err)

	_, err = run(t, env, "", "com.example.myapp", "MyApp", "--templates", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, derrors.IsErrorCode(err, derrors.ErrNotFound))
}

func TestVersion(t *testing.T) {
	_, env := testEnv(t)

	out, err := run(t, env, "", "version")
	require.NoError(t, err)
	assert.Equal(t, version.String(), out)

	out, err = run(t, env, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "droidgen version "+version.Version+"\n", out)
}

func TestGenConfig(t *testing.T) {
	_, env := testEnv(t)
	t.Setenv("DROIDGEN_GENERATE__FLAVORS", "dev,prod")

	out, err := run(t, env, "", "genconfig")
	require.NoError(t, err)

	var parsed config.Config
	require.NoError(t, gotoml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, []string{"dev", "prod"}, parsed.Generate.Flavors)
	assert.Equal(t, "environment", parsed.Generate.FlavorDimension)

	out, err = run(t, env, "", "genconfig", "--defaults")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultContent(), out)
}

func TestCompletion(t *testing.T) {
	_, env := testEnv(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := run(t, env, "", "completion", shell)
		require.NoError(t, err, shell)
		assert.Contains(t, out, "droidgen", shell)
	}

	_, err := run(t, env, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestHelpTopics(t *testing.T) {
	_, env := testEnv(t)

	out, err := run(t, env, "", "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "  config\n  firebase\n  templates\n")
	assert.Contains(t, out, "  --flavors\n")

	out, err = run(t, env, "", "help", "flavors")
	require.NoError(t, err)
	assert.Contains(t, out, "applicationIdSuffix")
}
