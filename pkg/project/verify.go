package project

import (
	"strings"

	"github.com/beevik/etree"

	derrors "github.com/arthur-debert/droidgen/pkg/errors"
	"github.com/arthur-debert/droidgen/pkg/filesystem"
)

// VerifyRequired fails with every required file that is missing
func VerifyRequired(fsys filesystem.FS, layout Layout) error {
	var missing []string
	for _, f := range layout.RequiredFiles() {
		if !filesystem.Exists(fsys, f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return derrors.Newf(derrors.ErrIncompleteOutput, "Validation failed. Missing files: %s", strings.Join(missing, ", ")).
			WithDetail("missing", missing)
	}
	return nil
}

// VerifyXML parses every .xml file among files and fails on the first one
// that is not well formed
func VerifyXML(fsys filesystem.FS, files []string) error {
	for _, f := range files {
		if !strings.HasSuffix(f, ".xml") {
			continue
		}
		data, err := fsys.ReadFile(f)
		if err != nil {
			return derrors.Wrapf(err, derrors.ErrIO, "failed to read %s", f).WithDetail("path", f)
		}
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil {
			return derrors.Wrapf(err, derrors.ErrInvalidOutput, "%s is not well-formed XML", f).WithDetail("path", f)
		}
	}
	return nil
}
