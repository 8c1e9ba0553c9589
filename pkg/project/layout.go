package project

import (
	"path/filepath"
	"strings"
)

// Layout holds the destination paths of a generated project
type Layout struct {
	ProjectDir string
	AppDir     string
	// SourceDir is the package directory under app/src/main/java
	SourceDir string
	ResDir    string
	MainDir   string
}

// NewLayout computes the layout of appName created under parent
func NewLayout(parent, appName, packageName string) Layout {
	projectDir := filepath.Join(parent, appName)
	appDir := filepath.Join(projectDir, "app")
	mainDir := filepath.Join(appDir, "src", "main")
	return Layout{
		ProjectDir: projectDir,
		AppDir:     appDir,
		MainDir:    mainDir,
		SourceDir:  filepath.Join(mainDir, "java", PackagePath(packageName)),
		ResDir:     filepath.Join(mainDir, "res"),
	}
}

// PackagePath turns com.example.app into com/example/app
func PackagePath(packageName string) string {
	return filepath.Join(strings.Split(packageName, ".")...)
}

// RequiredFiles are the files a successful generation must leave behind
func (l Layout) RequiredFiles() []string {
	return []string{
		filepath.Join(l.ProjectDir, "build.gradle.kts"),
		filepath.Join(l.ProjectDir, "settings.gradle.kts"),
		filepath.Join(l.AppDir, "build.gradle.kts"),
		filepath.Join(l.MainDir, "AndroidManifest.xml"),
		filepath.Join(l.SourceDir, "MainActivity.kt"),
		filepath.Join(l.SourceDir, "MainApplication.kt"),
		filepath.Join(l.SourceDir, "di", "AppModule.kt"),
	}
}
