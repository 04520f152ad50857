package compiler

import (
	"bytes"
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
	"sort"
)

// Emitter produces the output artifact of a registered file
type Emitter interface {
	Emit(ctx context.Context, c *Context, f *File) error
}

// EmitterFunc adapts a function to Emitter
type EmitterFunc func(ctx context.Context, c *Context, f *File) error

func (e EmitterFunc) Emit(ctx context.Context, c *Context, f *File) error {
	return e(ctx, c, f)
}

// Manifest describes the public surface of a compiled unit
type Manifest struct {
	Path      string             `yaml:"path"`
	Imports   []string           `yaml:"imports,omitempty"`
	Functions []FunctionManifest `yaml:"functions,omitempty"`
	Globals   []VariableManifest `yaml:"globals,omitempty"`
	Meta      map[string]string  `yaml:"meta,omitempty"`
}

type FunctionManifest struct {
	Name       string      `yaml:"name"`
	ReturnType string      `yaml:"returnType,omitempty"`
	Parameters []ValueType `yaml:"parameters,omitempty"`
	Extern     bool        `yaml:"extern,omitempty"`
}

type VariableManifest struct {
	Name string    `yaml:"name"`
	Type ValueType `yaml:"type"`
}

// NewManifest builds a manifest with functions and globals sorted by name
func NewManifest(f *File) *Manifest {
	result := &Manifest{Path: f.ResolvePath, Imports: f.Imports}
	for _, function := range f.Functions {
		item := FunctionManifest{Name: function.Name, Parameters: function.ParameterTypes, Extern: function.Extern}
		if returnType, ok := function.ReturnType.Get(); ok {
			item.ReturnType = returnType.String()
		}
		result.Functions = append(result.Functions, item)
	}
	sort.Slice(result.Functions, func(i, j int) bool {
		return result.Functions[i].Name < result.Functions[j].Name
	})
	for name, valueType := range f.Globals {
		result.Globals = append(result.Globals, VariableManifest{Name: name, Type: valueType})
	}
	sort.Slice(result.Globals, func(i, j int) bool {
		return result.Globals[i].Name < result.Globals[j].Name
	})
	result.Meta = f.Meta()
	return result
}

// ManifestEmitter writes a YAML manifest to the file output URL
type ManifestEmitter struct {
	fs afs.Service
}

func NewManifestEmitter(fs afs.Service) *ManifestEmitter {
	if fs == nil {
		fs = afs.New()
	}
	return &ManifestEmitter{fs: fs}
}

func (e *ManifestEmitter) Emit(ctx context.Context, c *Context, f *File) error {
	if f.OutputPath == "" {
		return nil
	}
	data, err := yaml.Marshal(NewManifest(f))
	if err != nil {
		return fmt.Errorf("failed to encode manifest %v: %w", f.ResolvePath, err)
	}
	parent, _ := url.Split(f.OutputPath, file.Scheme)
	if ok, _ := e.fs.Exists(ctx, parent); !ok {
		if err = e.fs.Create(ctx, parent, file.DefaultDirOsMode, true); err != nil {
			return fmt.Errorf("failed to create output folder %v: %w", parent, err)
		}
	}
	if err = e.fs.Upload(ctx, f.OutputPath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %v: %w", f.OutputPath, err)
	}
	return nil
}
