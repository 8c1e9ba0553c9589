package project

import (
	"io/fs"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/droidgen/pkg/config"
	derrors "github.com/arthur-debert/droidgen/pkg/errors"
	"github.com/arthur-debert/droidgen/pkg/filesystem"
	"github.com/arthur-debert/droidgen/pkg/logging"
	"github.com/arthur-debert/droidgen/pkg/materialize"
	"github.com/arthur-debert/droidgen/pkg/templates"
)

// Options configures a generation run
type Options struct {
	// Parent is the directory the project directory is created in
	Parent string
	Vars   Variables
	// Templates is the template set, usually templates.Embedded()
	Templates fs.FS
	// FS is the destination filesystem
	FS     filesystem.FS
	Config *config.Config
}

// Result describes a finished generation
type Result struct {
	Layout
	// Files lists every file written, in write order
	Files []string
	// Chmod holds the outcome of each best-effort mode change
	Chmod []materialize.Outcome
}

// generator carries the state of one run
type generator struct {
	opts   Options
	layout Layout
	m      *materialize.Materializer
	logger zerolog.Logger
	files  []string
	seen   map[string]bool
}

func (g *generator) record(paths ...string) {
	for _, p := range paths {
		if !g.seen[p] {
			g.seen[p] = true
			g.files = append(g.files, p)
		}
	}
}

// Generate creates the project described by opts. On failure the returned
// Result still lists the files written before the error.
func Generate(opts Options) (*Result, error) {
	logger := logging.GetLogger("project")
	if opts.Config == nil {
		cfg, err := config.Default()
		if err != nil {
			return nil, err
		}
		opts.Config = cfg
	}
	if opts.Templates == nil {
		opts.Templates = templates.Embedded()
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if err := opts.Vars.Validate(); err != nil {
		return nil, err
	}

	done := logging.LogOperationStart(logger, "generate")
	defer done()

	g := &generator{
		opts:   opts,
		layout: NewLayout(opts.Parent, opts.Vars.AppName, opts.Vars.PackageName),
		m:      materialize.New(opts.FS, opts.Config.Permissions),
		logger: logger,
		seen:   map[string]bool{},
	}
	result := &Result{Layout: g.layout}

	steps := []struct {
		name string
		run  func(*Result) error
	}{
		{"check destination", g.checkDestination},
		{"root templates", g.rootTemplates},
		{"app build file", g.appBuildFile},
		{"source directories", g.sourceDirectories},
		{"sources", g.sources},
		{"resources", g.resources},
		{"ignore files", g.ignoreFiles},
		{"verify", g.verify},
	}
	for _, step := range steps {
		logger.Debug().Str("step", step.name).Msg("Running generation step")
		if err := step.run(result); err != nil {
			logger.Debug().Err(err).Str("step", step.name).Msg("Generation step failed")
			result.Files = g.files
			return result, err
		}
	}

	result.Files = g.files
	logger.Info().
		Str("project", g.layout.ProjectDir).
		Int("files", len(g.files)).
		Msg("Project generated")
	return result, nil
}

// CheckDestination fails when parent already holds an entry named appName
func CheckDestination(fsys filesystem.FS, parent, appName string) error {
	target := filepath.Join(parent, appName)
	if filesystem.Exists(fsys, target) {
		return derrors.Newf(derrors.ErrValidation, "Directory %s already exists.", appName).
			WithDetail("path", target)
	}
	return nil
}

func (g *generator) checkDestination(*Result) error {
	return CheckDestination(g.opts.FS, g.opts.Parent, g.opts.Vars.AppName)
}

// rootTemplates renders top level files, copies nested directories and
// marks the configured scripts executable
func (g *generator) rootTemplates(result *Result) error {
	if err := g.m.Mkdir(g.layout.ProjectDir); err != nil {
		return err
	}
	entries, err := materialize.List(g.opts.Templates, templates.RootDir)
	if err != nil {
		return err
	}
	scope := g.opts.Vars.RootScope()
	for _, entry := range entries {
		target := filepath.Join(g.layout.ProjectDir, entry.Name)
		if entry.Kind == materialize.KindDirectory {
			files, err := g.m.CopyTree(g.opts.Templates, entry.Path, target)
			if err != nil {
				return err
			}
			g.record(files...)
			continue
		}
		if err := g.m.Render(g.opts.Templates, entry.Path, target, scope); err != nil {
			return err
		}
		g.record(target)
	}

	for _, name := range g.opts.Config.Layout.ExecutableFiles {
		target := filepath.Join(g.layout.ProjectDir, filepath.FromSlash(name))
		if !filesystem.Exists(g.opts.FS, target) {
			continue
		}
		result.Chmod = append(result.Chmod, g.m.Chmod(target, g.opts.Config.Permissions.Executable))
	}
	return nil
}

func (g *generator) appBuildFile(*Result) error {
	if err := g.m.Mkdir(g.layout.AppDir); err != nil {
		return err
	}
	target := filepath.Join(g.layout.AppDir, "build.gradle.kts")
	if err := g.m.Render(g.opts.Templates, templates.AppBuildFile, target, g.opts.Vars.BuildScope()); err != nil {
		return err
	}
	g.record(target)
	return nil
}

// sourceDirectories creates the package path, the resources directory and
// one directory per architecture layer
func (g *generator) sourceDirectories(*Result) error {
	dirs := []string{g.layout.SourceDir, g.layout.ResDir}
	for _, layer := range g.opts.Config.Layout.Layers {
		dirs = append(dirs, filepath.Join(g.layout.SourceDir, filepath.FromSlash(layer)))
	}
	for _, dir := range dirs {
		if err := g.m.Mkdir(dir); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) sources(*Result) error {
	scope := g.opts.Vars.SourceScope()
	for _, rel := range templates.SourceFiles {
		target := filepath.Join(g.layout.SourceDir, filepath.FromSlash(rel))
		if err := g.m.Render(g.opts.Templates, path.Join(templates.SourceDir, rel), target, scope); err != nil {
			return err
		}
		g.record(target)
	}

	manifest := filepath.Join(g.layout.MainDir, "AndroidManifest.xml")
	if err := g.m.Render(g.opts.Templates, templates.ManifestFile, manifest, scope); err != nil {
		return err
	}
	g.record(manifest)
	return nil
}

// resources copies the resource tree and then renders the two files that
// carry the app name over their copies
func (g *generator) resources(*Result) error {
	files, err := g.m.CopyTree(g.opts.Templates, templates.ResDir, g.layout.ResDir)
	if err != nil {
		return err
	}
	g.record(files...)

	scope := g.opts.Vars.ResourceScope()
	for _, src := range []string{templates.StringsFile, templates.ThemesFile} {
		rel, err := filepath.Rel(filepath.FromSlash(templates.ResDir), filepath.FromSlash(src))
		if err != nil {
			return derrors.Wrap(err, derrors.ErrInternal, "bad resource path")
		}
		target := filepath.Join(g.layout.ResDir, rel)
		if err := g.m.Render(g.opts.Templates, src, target, scope); err != nil {
			return err
		}
		g.record(target)
	}
	return nil
}

func (g *generator) ignoreFiles(*Result) error {
	root := filepath.Join(g.layout.ProjectDir, ".gitignore")
	if err := g.m.WriteFile(root, []byte(RootGitignore)); err != nil {
		return err
	}
	app := filepath.Join(g.layout.AppDir, ".gitignore")
	if err := g.m.WriteFile(app, []byte(AppGitignore)); err != nil {
		return err
	}
	g.record(root, app)
	return nil
}

func (g *generator) verify(*Result) error {
	if err := VerifyRequired(g.opts.FS, g.layout); err != nil {
		return err
	}
	return VerifyXML(g.opts.FS, g.files)
}
