package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	derrors "github.com/arthur-debert/droidgen/pkg/errors"
	"github.com/arthur-debert/droidgen/pkg/logging"
)

const (
	// EnvPrefix is the prefix of configuration environment variables.
	// Sections and keys are separated by a double underscore:
	// DROIDGEN_GENERATE__FLAVOR_DIMENSION=tier
	EnvPrefix = "DROIDGEN_"

	// EnvConfigPath points at an alternative user config file
	EnvConfigPath = "DROIDGEN_CONFIG"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// DefaultContent returns the embedded defaults file
func DefaultContent() string {
	return string(defaultConfig)
}

// UserConfigPath returns the user config file location
func UserConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, "droidgen", "config.toml")
}

// Default returns the embedded defaults with no user, env or flag layers applied
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, derrors.Wrap(err, derrors.ErrConfigLoad, "failed to load defaults")
	}
	return unmarshal(k)
}

// Load builds the effective configuration. Layers, lowest first: embedded
// defaults, the user file, DROIDGEN_ environment variables, then overrides
// (dotted keys, usually from command-line flags).
func Load(overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, derrors.Wrap(err, derrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config if it exists
	userPath := UserConfigPath()
	if _, err := os.Stat(userPath); err == nil {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, derrors.Wrapf(err, derrors.ErrConfigLoad, "failed to load config from %s", userPath).
				WithDetail("path", userPath)
		}
		logger.Debug().Str("path", userPath).Msg("Loaded user config")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, derrors.Wrap(err, derrors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flag overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, derrors.Wrap(err, derrors.ErrConfigLoad, "failed to load overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Strs("flavors", cfg.Generate.Flavors).
		Str("flavorDimension", cfg.Generate.FlavorDimension).
		Msg("Configuration loaded")
	return cfg, nil
}

// envKey maps DROIDGEN_GENERATE__FLAVOR_DIMENSION to generate.flavor_dimension.
// The config path variable itself is not a setting and maps to nothing.
func envKey(s string) string {
	if s == EnvConfigPath {
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSliceHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, derrors.Wrap(err, derrors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// trimSliceHookFunc trims list entries and drops empty ones, so
// "staging, production," decodes to [staging production].
func trimSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.String {
			return data, nil
		}
		items, ok := data.([]string)
		if !ok {
			return data, nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, nil
	}
}

func validate(cfg *Config) error {
	if cfg.Permissions.Directory == 0 || cfg.Permissions.File == 0 || cfg.Permissions.Executable == 0 {
		return derrors.New(derrors.ErrConfigLoad, "permissions must be non-zero")
	}
	if strings.TrimSpace(cfg.Generate.FlavorDimension) == "" && len(cfg.Generate.Flavors) > 0 {
		return derrors.New(derrors.ErrConfigLoad, "flavor_dimension is required when flavors are set")
	}
	return nil
}

// GenerateTOML renders cfg as a TOML document
func GenerateTOML(cfg *Config) ([]byte, error) {
	out, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.ErrInternal, "failed to marshal configuration")
	}
	return out, nil
}
