package compiler

import (
	"bytes"
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/sequencescript/diag"
	"github.com/viant/sequencescript/lexer"
	"github.com/viant/sequencescript/parser"
	"golang.org/x/text/encoding"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"
)

// Context accumulates compiled files and diagnostics for one compilation.
// Parse is safe for concurrent use; registration order decides the order of
// Files and Errors.
type Context struct {
	mux   sync.Mutex
	files map[string]*File
	order []string
	// references are units loaded for lookup only, never emitted
	references map[string]*File
	stdlib     *File
	errors     []diag.CompileError
	fs         afs.Service
	resolver   IncludeResolver
	encoding   encoding.Encoding
	logger     *slog.Logger
	emitter    Emitter
	stderr     io.Writer
}

// New creates a compilation context
func New(options ...Option) *Context {
	ret := &Context{files: map[string]*File{}, references: map[string]*File{}}
	for _, option := range options {
		option(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.emitter == nil {
		ret.emitter = NewManifestEmitter(ret.fs)
	}
	if ret.stderr == nil {
		ret.stderr = os.Stderr
	}
	return ret
}

// Error records a diagnostic
func (c *Context) Error(location diag.CodeLocation, code, message string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.errors = append(c.errors, diag.CompileError{Location: location, Code: code, Message: message})
}

// Errors returns recorded diagnostics in order
func (c *Context) Errors() []diag.CompileError {
	c.mux.Lock()
	defer c.mux.Unlock()
	result := make([]diag.CompileError, len(c.errors))
	copy(result, c.errors)
	return result
}

// ResetErrors drops recorded diagnostics
func (c *Context) ResetErrors() {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.errors = nil
}

// CreateStandardLib compiles the standard library source; its procedures
// are marked as system functions.
func (c *Context) CreateStandardLib(ctx context.Context, source string) (*File, error) {
	file, err := c.parse(ctx, StandardLibraryPath, "", "", strings.NewReader(source), true)
	if err != nil {
		return nil, err
	}
	c.mux.Lock()
	c.stdlib = file
	c.errors = append(c.errors, file.Diagnostics.Errors()...)
	c.mux.Unlock()
	return file, nil
}

// StandardLibrary returns the standard library unit, or nil
func (c *Context) StandardLibrary() *File {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.stdlib
}

// Parse reads, lexes and parses inputURL without registering the result.
func (c *Context) Parse(ctx context.Context, resolvePath, inputURL, outputURL string) (*File, error) {
	data, err := c.fs.DownloadWithURL(ctx, inputURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", inputURL, err)
	}
	return c.parse(ctx, resolvePath, inputURL, outputURL, bytes.NewReader(data), false)
}

func (c *Context) parse(ctx context.Context, resolvePath, inputURL, outputURL string, reader io.Reader, system bool) (*File, error) {
	file := newFile(resolvePath, inputURL, outputURL)
	tokens, err := lexer.Tokenize(resolvePath, reader, c.encoding, file.Diagnostics)
	if err != nil {
		return nil, err
	}
	file.Tokens = tokens
	file.AST = parser.Parse(tokens, file.Diagnostics)
	file.declare(system)
	if err = c.resolveImports(ctx, file); err != nil {
		return nil, err
	}
	c.logger.Debug("parsed", "path", resolvePath, "tokens", len(tokens), "diagnostics", file.Diagnostics.Len())
	return file, nil
}

func (c *Context) resolveImports(ctx context.Context, file *File) error {
	for _, node := range file.AST.Imports() {
		if node.Target.Kind != lexer.String {
			continue
		}
		requested := node.Target.Lexeme
		if c.resolver == nil {
			file.addImport(path.Clean(requested))
			continue
		}
		include, err := c.resolver.Find(ctx, file.ResolvePath, requested)
		if err != nil {
			return fmt.Errorf("failed to resolve %v from %v: %w", requested, file.ResolvePath, err)
		}
		if include == nil {
			file.Diagnostics.Error(node.Target.Location, diag.CodeUnresolvedImport,
				fmt.Sprintf("Could not resolve included module '%s' imported from '%s'", requested, file.ResolvePath))
			continue
		}
		file.addImport(include.ResolvePath)
	}
	return nil
}

// Register adds a parsed file and merges its diagnostics
func (c *Context) Register(file *File) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if _, ok := c.files[file.ResolvePath]; !ok {
		c.order = append(c.order, file.ResolvePath)
	}
	c.files[file.ResolvePath] = file
	c.errors = append(c.errors, file.Diagnostics.Errors()...)
}

// Reference makes an already compiled unit visible to Lookup, Function and
// ResolveInclude. It is not listed by Files, not emitted and its
// diagnostics are not merged.
func (c *Context) Reference(file *File) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if _, ok := c.files[file.ResolvePath]; ok {
		return
	}
	c.references[file.ResolvePath] = file
}

// BeginCompiling parses and registers one file
func (c *Context) BeginCompiling(ctx context.Context, resolvePath, inputURL, outputURL string) (*File, error) {
	file, err := c.Parse(ctx, resolvePath, inputURL, outputURL)
	if err != nil {
		return nil, err
	}
	c.Register(file)
	return file, nil
}

// CompileSource parses and registers in-memory source
func (c *Context) CompileSource(ctx context.Context, resolvePath, source string) (*File, error) {
	file, err := c.parse(ctx, resolvePath, "", "", strings.NewReader(source), false)
	if err != nil {
		return nil, err
	}
	c.Register(file)
	return file, nil
}

// Lookup returns a registered or referenced file, or the standard library, by resolve path
func (c *Context) Lookup(resolvePath string) (*File, bool) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if resolvePath == StandardLibraryPath && c.stdlib != nil {
		return c.stdlib, true
	}
	if file, ok := c.files[resolvePath]; ok {
		return file, true
	}
	file, ok := c.references[resolvePath]
	return file, ok
}

// ResolveInclude returns the registered file that `from` reaches with
// import "to", looked up next to `from` first.
func (c *Context) ResolveInclude(from, to string) (*File, bool) {
	if file, ok := c.Lookup(path.Join(path.Dir(from), to)); ok {
		return file, true
	}
	return c.Lookup(path.Clean(to))
}

// Files returns registered files in registration order
func (c *Context) Files() []*File {
	c.mux.Lock()
	defer c.mux.Unlock()
	result := make([]*File, 0, len(c.order))
	for _, resolvePath := range c.order {
		result = append(result, c.files[resolvePath])
	}
	return result
}

// Dependencies returns resolved imports of a registered file
func (c *Context) Dependencies(resolvePath string) []string {
	file, ok := c.Lookup(resolvePath)
	if !ok {
		return nil
	}
	return file.Imports
}

// Function finds a procedure visible from file: its own, then imported
// units, then the standard library.
func (c *Context) Function(file *File, name string) (*Function, bool) {
	if function, ok := file.Functions[name]; ok {
		return function, true
	}
	for _, imported := range file.Imports {
		if unit, ok := c.Lookup(imported); ok {
			if function, ok := unit.Functions[name]; ok {
				return function, true
			}
		}
	}
	if stdlib := c.StandardLibrary(); stdlib != nil {
		function, ok := stdlib.Functions[name]
		return function, ok
	}
	return nil, false
}

// ThrowIfErrors prints every diagnostic to the error writer and returns a
// *diag.Failure; it returns nil when there are none.
func (c *Context) ThrowIfErrors() error {
	errors := c.Errors()
	if len(errors) == 0 {
		return nil
	}
	if err := diag.Write(c.stderr, errors); err != nil {
		c.logger.Warn("failed to write diagnostics", "error", err)
	}
	return &diag.Failure{Errors: errors}
}

// Emit runs the emitter for every registered file
func (c *Context) Emit(ctx context.Context) error {
	for _, file := range c.Files() {
		if err := c.emitter.Emit(ctx, c, file); err != nil {
			return fmt.Errorf("failed to emit %v: %w", file.ResolvePath, err)
		}
		c.logger.Debug("emitted", "path", file.ResolvePath, "output", file.OutputPath)
	}
	return nil
}
