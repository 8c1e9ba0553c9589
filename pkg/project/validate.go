package project

import (
	"regexp"
	"strings"

	derrors "github.com/arthur-debert/droidgen/pkg/errors"
)

// packageNamePattern accepts Java style package names with at least two
// segments, e.g. com.example.app
var packageNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z0-9_]+)+[0-9a-z_]$`)

// ValidatePackageName checks name against the Java package naming rules
func ValidatePackageName(name string) error {
	if !packageNamePattern.MatchString(name) {
		return derrors.New(derrors.ErrValidation, "Invalid package name. It must follow Java package naming conventions.").
			WithDetail("packageName", name)
	}
	return nil
}

// ValidateAppName checks that name can be used as a single directory name
func ValidateAppName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return derrors.New(derrors.ErrValidation, "App name must not be empty.")
	case name == "." || name == "..":
		return derrors.Newf(derrors.ErrValidation, "App name %q is not a valid directory name.", name).
			WithDetail("appName", name)
	case strings.ContainsAny(name, `/\`):
		return derrors.Newf(derrors.ErrValidation, "App name %q must not contain path separators.", name).
			WithDetail("appName", name)
	}
	return nil
}

// ParseList splits a comma separated list, trimming entries and dropping
// empty ones
func ParseList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
