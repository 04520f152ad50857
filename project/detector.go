package project

import (
	"github.com/viant/sequencescript/build"
	"os"
	"path/filepath"
)

// Project represents a detected script project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	ConfigPath   string // Marker file found at the root, empty when none was found
	RelativePath string // Slash separated path from the root to the inspected path
}

// HasConfig reports whether a configuration file was found
func (p *Project) HasConfig() bool {
	return p.ConfigPath != ""
}

// Detector identifies project root folders
type Detector struct {
	markers []string
}

// New creates a detector; without markers it looks for the build configuration file
func New(markers ...string) *Detector {
	if len(markers) == 0 {
		markers = []string{build.ConfigFile}
	}
	return &Detector{markers: markers}
}

// Detect searches up from location for a marker file. When none is found
// the project root is the starting directory.
func (d *Detector) Detect(location string) (*Project, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	ret := &Project{RootPath: startDir}
	if rootPath, marker := d.findProjectRoot(startDir); rootPath != "" {
		ret.RootPath = rootPath
		ret.ConfigPath = filepath.Join(rootPath, marker)
	}
	relPath, err := filepath.Rel(ret.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	ret.RelativePath = filepath.ToSlash(relPath)
	return ret, nil
}

// findProjectRoot searches up the directory tree for a marker
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, marker
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}
