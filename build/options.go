package build

import (
	"context"
	"fmt"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/afs"
	"github.com/viant/sequencescript/registry"
	"gopkg.in/yaml.v3"
	"path"
	"path/filepath"
	"strings"
)

// ConfigFile is the project configuration file name
const ConfigFile = "sequencescript.yaml"

// Options configures one directory compilation
type Options struct {
	StandardLibrarySource string
	InputDirectory        string
	OutputDirectory       string
	// Pattern selects input files, "*.ss" by default. Patterns without a
	// slash match the base name, others the slash separated relative path or
	// one of its directories.
	Pattern        string
	ExcludePattern string
	// Concurrency above 1 parses files in parallel
	Concurrency int
	Registry    registry.Registry
}

// normalize returns a defaulted copy of the options
func (o *Options) normalize() (*Options, error) {
	if o == nil {
		return nil, fmt.Errorf("options were nil")
	}
	ret := *o
	if ret.InputDirectory == "" {
		return nil, fmt.Errorf("input directory was empty")
	}
	if ret.OutputDirectory == "" {
		return nil, fmt.Errorf("output directory was empty")
	}
	if ret.Pattern == "" {
		ret.Pattern = "*.ss"
	}
	if ret.Concurrency < 1 {
		ret.Concurrency = 1
	}
	if ret.Registry == nil {
		ret.Registry = registry.NewMemory()
	}
	for _, pattern := range []string{ret.Pattern, ret.ExcludePattern} {
		if pattern != "" && !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
	}
	return &ret, nil
}

// matches reports whether resolvePath is selected by pattern. A pattern
// without a slash matches the base name at any depth. A pattern with a slash
// matches the relative path or any of its parent directories, so "gen/*"
// covers everything below gen. "**" spans directories.
func matches(pattern, resolvePath string) bool {
	if pattern == "" {
		return false
	}
	if !strings.Contains(pattern, "/") {
		ok, _ := doublestar.Match("**/"+pattern, resolvePath)
		return ok
	}
	for subject := resolvePath; subject != "." && subject != "/"; subject = path.Dir(subject) {
		if ok, _ := doublestar.Match(pattern, subject); ok {
			return true
		}
	}
	return false
}

// Config is the YAML project configuration
type Config struct {
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	Stdlib      string `yaml:"stdlib,omitempty"`
	Pattern     string `yaml:"pattern"`
	Exclude     string `yaml:"exclude,omitempty"`
	Registry    string `yaml:"registry,omitempty"`
	Graph       string `yaml:"graph,omitempty"`
	Concurrency int    `yaml:"concurrency"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Input:       "scripts",
		Output:      "build/scripts",
		Pattern:     "*.ss",
		Registry:    ".sequencescript/registry.yaml",
		Concurrency: 1,
	}
}

// LoadConfig reads a configuration file over DefaultConfig. Relative paths
// are resolved against the directory holding the file.
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	ret.resolve(configDir(URL))
	return ret, nil
}

func configDir(URL string) string {
	if index := strings.LastIndex(URL, "/"); strings.Contains(URL, "://") && index != -1 {
		return URL[:index]
	}
	return filepath.Dir(URL)
}

func (c *Config) resolve(baseDir string) {
	for _, location := range []*string{&c.Input, &c.Output, &c.Stdlib, &c.Registry, &c.Graph} {
		*location = resolvePath(baseDir, *location)
	}
}

func resolvePath(baseDir, location string) string {
	if location == "" || strings.Contains(location, "://") || filepath.IsAbs(location) {
		return location
	}
	if strings.Contains(baseDir, "://") {
		return baseDir + "/" + path.Clean(location)
	}
	return filepath.Join(baseDir, filepath.FromSlash(location))
}

// Options loads the standard library and opens the registry described by the config
func (c *Config) Options(ctx context.Context, fs afs.Service) (*Options, error) {
	if fs == nil {
		fs = afs.New()
	}
	ret := &Options{
		InputDirectory:  c.Input,
		OutputDirectory: c.Output,
		Pattern:         c.Pattern,
		ExcludePattern:  c.Exclude,
		Concurrency:     c.Concurrency,
	}
	if c.Stdlib != "" {
		data, err := fs.DownloadWithURL(ctx, c.Stdlib)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard library %v: %w", c.Stdlib, err)
		}
		ret.StandardLibrarySource = string(data)
	}
	if c.Registry != "" {
		store, err := registry.Open(ctx, fs, c.Registry)
		if err != nil {
			return nil, err
		}
		ret.Registry = store
	}
	return ret, nil
}
