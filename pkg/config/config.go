package config

import (
	"os"
)

// Config is the effective droidgen configuration
type Config struct {
	Generate    Generate        `koanf:"generate" toml:"generate"`
	Layout      Layout          `koanf:"layout" toml:"layout"`
	Permissions FilePermissions `koanf:"permissions" toml:"permissions"`
}

// Generate holds the defaults for the values rendered into a new project
type Generate struct {
	Flavors               []string `koanf:"flavors" toml:"flavors"`
	FlavorDimension       string   `koanf:"flavor_dimension" toml:"flavor_dimension"`
	DisableRibbonFlavors  []string `koanf:"disable_ribbon_flavors" toml:"disable_ribbon_flavors"`
	DisableRibbonVariants []string `koanf:"disable_ribbon_variants" toml:"disable_ribbon_variants"`
	// TemplatesDir overrides the embedded template set when non-empty
	TemplatesDir string `koanf:"templates_dir" toml:"templates_dir"`
}

// Layout holds the shape of the generated tree
type Layout struct {
	Layers          []string `koanf:"layers" toml:"layers"`
	ExecutableFiles []string `koanf:"executable_files" toml:"executable_files"`
}

// FilePermissions holds file and directory permission settings
type FilePermissions struct {
	Directory  os.FileMode `koanf:"directory" toml:"directory"`
	File       os.FileMode `koanf:"file" toml:"file"`
	Executable os.FileMode `koanf:"executable" toml:"executable"`
}
