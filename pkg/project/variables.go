package project

import (
	derrors "github.com/arthur-debert/droidgen/pkg/errors"
	"github.com/arthur-debert/droidgen/pkg/template"
)

// Variables are the values substituted into the templates
type Variables struct {
	PackageName     string
	AppName         string
	UseFirebase     bool
	Flavors         []string
	FlavorDimension string
	// DisableRibbonFlavors and DisableRibbonVariants combine into the
	// flavor+buildType variants that get no launcher ribbon
	DisableRibbonFlavors  []string
	DisableRibbonVariants []string
}

// Validate checks the user supplied values
func (v Variables) Validate() error {
	if err := ValidatePackageName(v.PackageName); err != nil {
		return err
	}
	if err := ValidateAppName(v.AppName); err != nil {
		return err
	}
	if len(v.Flavors) > 0 && v.FlavorDimension == "" {
		return derrors.New(derrors.ErrValidation, "A flavor dimension is required when flavors are set.")
	}
	return nil
}

// RootScope is used by the root templates
func (v Variables) RootScope() template.Vars {
	return template.Vars{
		"packageName": template.String(v.PackageName),
		"appName":     template.String(v.AppName),
		"useFirebase": template.Bool(v.UseFirebase),
	}
}

// BuildScope is used by the app build file
func (v Variables) BuildScope() template.Vars {
	vars := v.RootScope()
	vars["flavors"] = template.Strings(v.Flavors)
	vars["flavorDimension"] = template.String(v.FlavorDimension)
	vars["disableRibbonFlavors"] = template.Strings(v.DisableRibbonFlavors)
	vars["disableRibbonVariants"] = template.Strings(v.DisableRibbonVariants)
	return vars
}

// SourceScope is used by the Kotlin sources and the manifest
func (v Variables) SourceScope() template.Vars {
	return template.Vars{
		"packageName": template.String(v.PackageName),
		"appName":     template.String(v.AppName),
	}
}

// ResourceScope is used by strings.xml and themes.xml
func (v Variables) ResourceScope() template.Vars {
	return template.Vars{
		"appName": template.String(v.AppName),
	}
}
