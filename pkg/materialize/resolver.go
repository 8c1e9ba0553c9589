package materialize

import (
	"errors"
	"io/fs"
	"path"

	derrors "github.com/arthur-debert/droidgen/pkg/errors"
)

// Kind tells whether a template entry is a directory or a file
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// Entry is one immediate child of a template directory
type Entry struct {
	Name string
	// Path is the slash separated path of the entry inside the template FS
	Path string
	Kind Kind
}

// List returns the immediate children of dir in the order src reports them.
// The tagging is structural: anything that is not a directory is a file.
func List(src fs.FS, dir string) ([]Entry, error) {
	items, err := fs.ReadDir(src, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, derrors.Wrapf(err, derrors.ErrNotFound, "template directory %s does not exist", dir).
				WithDetail("path", dir)
		}
		return nil, derrors.Wrapf(err, derrors.ErrIO, "failed to read template directory %s", dir).
			WithDetail("path", dir)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		kind := KindFile
		if item.IsDir() {
			kind = KindDirectory
		}
		entries = append(entries, Entry{
			Name: item.Name(),
			Path: path.Join(dir, item.Name()),
			Kind: kind,
		})
	}
	return entries, nil
}
