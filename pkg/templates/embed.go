// Package templates holds the Android project template set shipped inside
// the binary and the names of the files generation reads from it.
package templates

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"strings"

	derrors "github.com/arthur-debert/droidgen/pkg/errors"
)

//go:embed all:files
var embedded embed.FS

// Paths inside a template set
const (
	RootDir      = "root"
	AppBuildFile = "app/build.gradle.kts"
	ManifestFile = "app/src/main/AndroidManifest.xml"
	SourceDir    = "app/src/main/java"
	ResDir       = "app/src/main/res"
	StringsFile  = "app/src/main/res/values/strings.xml"
	ThemesFile   = "app/src/main/res/values/themes.xml"
)

// SourceFiles are the Kotlin templates under SourceDir, rendered into the
// package directory at the same relative path
var SourceFiles = []string{
	"MainApplication.kt",
	"MainActivity.kt",
	"di/AppModule.kt",
	"presentation/theme/Theme.kt",
	"presentation/theme/Color.kt",
	"presentation/theme/Type.kt",
}

// Embedded returns the template set built into the binary
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		// files is a compile time constant directory
		panic(err)
	}
	return sub
}

// Open returns the on-disk template set at dir, or the embedded set when dir
// is empty. The set is checked for every file generation needs.
func Open(dir string) (fs.FS, error) {
	if dir == "" {
		return Embedded(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.Wrapf(err, derrors.ErrNotFound, "template directory %s does not exist", dir).
				WithDetail("path", dir)
		}
		return nil, derrors.Wrapf(err, derrors.ErrIO, "cannot read template directory %s", dir).
			WithDetail("path", dir)
	}
	if !info.IsDir() {
		return nil, derrors.Newf(derrors.ErrValidation, "template path %s is not a directory", dir).
			WithDetail("path", dir)
	}
	fsys := os.DirFS(dir)
	if err := Check(fsys); err != nil {
		return nil, err
	}
	return fsys, nil
}

// Required lists every template path generation reads directly
func Required() []string {
	required := []string{RootDir, AppBuildFile, ManifestFile, ResDir, StringsFile, ThemesFile}
	for _, f := range SourceFiles {
		required = append(required, path.Join(SourceDir, f))
	}
	return required
}

// Check reports every required template missing from fsys
func Check(fsys fs.FS) error {
	var missing []string
	for _, name := range Required() {
		if _, err := fs.Stat(fsys, name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return derrors.Newf(derrors.ErrNotFound, "template set is missing: %s", strings.Join(missing, ", ")).
			WithDetail("missing", missing)
	}
	return nil
}
