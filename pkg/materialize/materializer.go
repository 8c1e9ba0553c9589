package materialize

import (
	"bytes"
	"errors"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/droidgen/pkg/config"
	derrors "github.com/arthur-debert/droidgen/pkg/errors"
	"github.com/arthur-debert/droidgen/pkg/filesystem"
	"github.com/arthur-debert/droidgen/pkg/logging"
	"github.com/arthur-debert/droidgen/pkg/template"
)

// Outcome is the result of a best-effort step. Err is nil on success.
type Outcome struct {
	Path string
	Err  error
}

// OK reports whether the step succeeded
func (o Outcome) OK() bool { return o.Err == nil }

// Materializer writes template output to a destination filesystem
type Materializer struct {
	dst    filesystem.FS
	perms  config.FilePermissions
	logger zerolog.Logger
}

// New returns a Materializer writing to dst with the given permissions
func New(dst filesystem.FS, perms config.FilePermissions) *Materializer {
	return &Materializer{
		dst:    dst,
		perms:  perms,
		logger: logging.GetLogger("materialize"),
	}
}

// Mkdir creates dir and any missing parents
func (m *Materializer) Mkdir(dir string) error {
	if err := m.dst.MkdirAll(dir, m.perms.Directory); err != nil {
		return derrors.Wrapf(err, derrors.ErrIO, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}
	return nil
}

// WriteFile writes data to name, creating parent directories and replacing
// any existing file
func (m *Materializer) WriteFile(name string, data []byte) error {
	if err := m.Mkdir(filepath.Dir(name)); err != nil {
		return err
	}
	if err := m.dst.WriteFile(name, data, m.perms.File); err != nil {
		return derrors.Wrapf(err, derrors.ErrIO, "failed to write %s", name).
			WithDetail("path", name)
	}
	m.logger.Trace().Str("path", name).Int("bytes", len(data)).Msg("Wrote file")
	return nil
}

// CopyTree copies the directory srcDir of src to dstDir without
// interpretation. It returns the destination paths of the files written.
func (m *Materializer) CopyTree(src fs.FS, srcDir, dstDir string) ([]string, error) {
	if err := m.Mkdir(dstDir); err != nil {
		return nil, err
	}

	var written []string
	entries, err := List(src, srcDir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		target := filepath.Join(dstDir, entry.Name)
		if entry.Kind == KindDirectory {
			files, err := m.CopyTree(src, entry.Path, target)
			if err != nil {
				return nil, err
			}
			written = append(written, files...)
			continue
		}
		data, err := readTemplate(src, entry.Path)
		if err != nil {
			return nil, err
		}
		if err := m.WriteFile(target, data); err != nil {
			return nil, err
		}
		written = append(written, target)
	}

	m.logger.Debug().
		Str("src", srcDir).
		Str("dst", dstDir).
		Int("files", len(written)).
		Msg("Copied template tree")
	return written, nil
}

// Render reads srcFile from src, renders it with vars and writes the result
// to dstFile, overwriting whatever is there
func (m *Materializer) Render(src fs.FS, srcFile, dstFile string, vars template.Vars) error {
	data, err := readTemplate(src, srcFile)
	if err != nil {
		return err
	}

	tpl, err := template.Parse(srcFile, data)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, vars); err != nil {
		return err
	}

	if err := m.WriteFile(dstFile, buf.Bytes()); err != nil {
		return err
	}
	m.logger.Debug().Str("template", srcFile).Str("dst", dstFile).Msg("Rendered template")
	return nil
}

// Chmod changes the mode of name. Failures are returned in the Outcome and
// logged as warnings, they never abort generation.
func (m *Materializer) Chmod(name string, mode fs.FileMode) Outcome {
	err := m.dst.Chmod(name, mode)
	if err != nil {
		m.logger.Warn().Err(err).Str("path", name).Msg("Could not change file mode")
		return Outcome{Path: name, Err: err}
	}
	m.logger.Debug().Str("path", name).Str("mode", mode.String()).Msg("Changed file mode")
	return Outcome{Path: name}
}

func readTemplate(src fs.FS, name string) ([]byte, error) {
	data, err := fs.ReadFile(src, path.Clean(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, derrors.Wrapf(err, derrors.ErrNotFound, "template %s does not exist", name).
				WithDetail("path", name)
		}
		return nil, derrors.Wrapf(err, derrors.ErrIO, "failed to read template %s", name).
			WithDetail("path", name)
	}
	return data, nil
}
