package build

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/sequencescript/compiler"
	"github.com/viant/sequencescript/registry"
	"golang.org/x/sync/errgroup"
	"io"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"
	"time"
)

// Result describes a completed directory build
type Result struct {
	// Files lists every matched file in enumeration order
	Files []string
	// Recompiled lists the files compiled by this run
	Recompiled []string
	Graph      *Graph
}

type source struct {
	resolvePath string
	inputURL    string
	outputURL   string
	modTime     time.Time
	modified    bool
}

type builder struct {
	fs              afs.Service
	logger          *slog.Logger
	stderr          io.Writer
	emitter         compiler.Emitter
	exporter        GraphExporter
	compilerOptions []compiler.Option
}

// CompileDirectory recompiles the files of options.InputDirectory that
// changed since the previous run, together with every file depending on
// them. Compilation diagnostics are returned as *diag.Failure.
func CompileDirectory(ctx context.Context, options *Options, opts ...Option) (*Result, error) {
	run, err := options.normalize()
	if err != nil {
		return nil, err
	}
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.fs == nil {
		b.fs = afs.New()
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b.compile(ctx, run)
}

func (b *builder) compile(ctx context.Context, run *Options) (*Result, error) {
	started := time.Now()
	compilerOptions := []compiler.Option{
		compiler.WithFS(b.fs),
		compiler.WithLogger(b.logger),
		compiler.WithIncludeResolver(compiler.NewDirectoryResolver(b.fs, run.InputDirectory)),
	}
	if b.stderr != nil {
		compilerOptions = append(compilerOptions, compiler.WithErrorWriter(b.stderr))
	}
	if b.emitter != nil {
		compilerOptions = append(compilerOptions, compiler.WithEmitter(b.emitter))
	}
	c := compiler.New(append(compilerOptions, b.compilerOptions...)...)

	if _, err := c.CreateStandardLib(ctx, run.StandardLibrarySource); err != nil {
		return nil, err
	}
	stdlibHash := HashText(run.StandardLibrarySource)
	previousHash, _ := run.Registry.GetString(stdlibHashKey)
	stdlibChanged := previousHash != stdlibHash
	previousVersion, _ := run.Registry.GetString(compilerVersionKey)
	versionChanged := !compatible(previousVersion)

	if err := b.ensureDir(ctx, run.OutputDirectory); err != nil {
		return nil, err
	}
	sources, err := b.enumerate(ctx, run)
	if err != nil {
		return nil, err
	}

	files := make([]string, len(sources))
	present := make(map[string]bool, len(sources))
	for i, src := range sources {
		files[i] = src.resolvePath
		present[src.resolvePath] = true
	}
	dirty := map[string]bool{}
	recorded := Dependencies{}
	for _, src := range sources {
		if src.modified, err = b.wasModified(ctx, src); err != nil {
			return nil, err
		}
		deps, ok := recordedDependencies(run.Registry, src.resolvePath)
		recorded[src.resolvePath] = deps
		switch {
		case src.modified, stdlibChanged, versionChanged, !ok:
			dirty[src.resolvePath] = true
		default:
			for _, dep := range deps {
				if !present[dep] {
					dirty[src.resolvePath] = true
					break
				}
			}
		}
	}
	marked := Invalidate(files, dirty, recorded)

	var pending []*source
	for _, src := range sources {
		if marked[src.resolvePath] {
			pending = append(pending, src)
		}
	}
	compiled, err := b.parseAll(ctx, c, pending, run.Concurrency)
	if err != nil {
		return nil, err
	}
	result := &Result{Files: files}
	current := Dependencies{}
	for resolvePath, deps := range recorded {
		current[resolvePath] = deps
	}
	for _, compiledFile := range compiled {
		c.Register(compiledFile)
		recordDependencies(run.Registry, compiledFile.ResolvePath, compiledFile.Imports)
		current[compiledFile.ResolvePath] = compiledFile.Imports
		result.Recompiled = append(result.Recompiled, compiledFile.ResolvePath)
		b.logger.Debug("compiled", "path", compiledFile.ResolvePath, "imports", len(compiledFile.Imports))
	}
	if err = b.loadReferences(ctx, c, sources, marked, compiled); err != nil {
		return nil, err
	}

	diagnostics := len(c.Errors())
	if diagnostics == 0 {
		run.Registry.SetString(stdlibHashKey, stdlibHash)
		run.Registry.SetString(compilerVersionKey, CompilerVersion)
	}
	if saver, ok := run.Registry.(registry.Saver); ok {
		if err = saver.Save(ctx); err != nil {
			return nil, fmt.Errorf("failed to save registry: %w", err)
		}
	}

	result.Graph = buildGraph(sources, marked, current)
	if b.exporter != nil {
		if err = b.exporter.Export(ctx, result.Graph); err != nil {
			return nil, err
		}
	}

	if err = c.ThrowIfErrors(); err != nil {
		return result, err
	}
	if err = c.Emit(ctx); err != nil {
		return result, err
	}
	if err = c.ThrowIfErrors(); err != nil {
		return result, err
	}
	b.logger.Info("compiled directory",
		"input", run.InputDirectory,
		"files", len(files),
		"recompiled", len(result.Recompiled),
		"stdlibChanged", stdlibChanged,
		"versionChanged", versionChanged,
		"elapsed", time.Since(started))
	return result, nil
}

// enumerate lists matching files sorted by resolve path
func (b *builder) enumerate(ctx context.Context, run *Options) ([]*source, error) {
	outputPrefix := relativeOutput(run.InputDirectory, run.OutputDirectory)
	var result []*source
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		resolvePath := path.Join(parent, info.Name())
		if outputPrefix != "" && (resolvePath == outputPrefix || strings.HasPrefix(resolvePath, outputPrefix+"/")) {
			return true, nil
		}
		if !matches(run.Pattern, resolvePath) || matches(run.ExcludePattern, resolvePath) {
			return true, nil
		}
		result = append(result, &source{
			resolvePath: resolvePath,
			inputURL:    url.Join(run.InputDirectory, resolvePath),
			outputURL:   url.Join(run.OutputDirectory, resolvePath),
			modTime:     info.ModTime(),
		})
		return true, nil
	}
	if err := b.fs.Walk(ctx, run.InputDirectory, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %v: %w", run.InputDirectory, err)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].resolvePath < result[j].resolvePath
	})
	return result, nil
}

// wasModified reports whether the input is not older than its output; a
// missing output counts as modified.
func (b *builder) wasModified(ctx context.Context, src *source) (bool, error) {
	ok, err := b.fs.Exists(ctx, src.outputURL)
	if err != nil {
		return false, fmt.Errorf("failed to check %v: %w", src.outputURL, err)
	}
	if !ok {
		return true, nil
	}
	object, err := b.fs.Object(ctx, src.outputURL)
	if err != nil {
		return false, fmt.Errorf("failed to stat %v: %w", src.outputURL, err)
	}
	return !src.modTime.Before(object.ModTime()), nil
}

// parseAll parses pending sources, in parallel when concurrency > 1. Files
// are returned in the order of pending.
func (b *builder) parseAll(ctx context.Context, c *compiler.Context, pending []*source, concurrency int) ([]*compiler.File, error) {
	result := make([]*compiler.File, len(pending))
	if concurrency <= 1 {
		for i, src := range pending {
			b.logger.Debug("compiling", "path", src.resolvePath)
			compiledFile, err := c.Parse(ctx, src.resolvePath, src.inputURL, src.outputURL)
			if err != nil {
				return nil, err
			}
			result[i] = compiledFile
		}
		return result, nil
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for i, src := range pending {
		i, src := i, src
		group.Go(func() error {
			b.logger.Debug("compiling", "path", src.resolvePath)
			compiledFile, err := c.Parse(groupCtx, src.resolvePath, src.inputURL, src.outputURL)
			if err != nil {
				return err
			}
			result[i] = compiledFile
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// loadReferences parses the unchanged units reachable through the imports of
// compiled files so their signatures resolve; they are neither recompiled
// nor emitted.
func (b *builder) loadReferences(ctx context.Context, c *compiler.Context, sources []*source, marked map[string]bool, compiled []*compiler.File) error {
	byPath := make(map[string]*source, len(sources))
	for _, src := range sources {
		byPath[src.resolvePath] = src
	}
	visited := map[string]bool{}
	var queue []string
	for _, compiledFile := range compiled {
		queue = append(queue, compiledFile.Imports...)
	}
	for len(queue) > 0 {
		resolvePath := queue[0]
		queue = queue[1:]
		if visited[resolvePath] || marked[resolvePath] {
			continue
		}
		visited[resolvePath] = true
		src, ok := byPath[resolvePath]
		if !ok {
			continue
		}
		reference, err := c.Parse(ctx, src.resolvePath, src.inputURL, src.outputURL)
		if err != nil {
			return err
		}
		c.Reference(reference)
		b.logger.Debug("referenced", "path", resolvePath)
		queue = append(queue, reference.Imports...)
	}
	return nil
}

func (b *builder) ensureDir(ctx context.Context, URL string) error {
	ok, err := b.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check %v: %w", URL, err)
	}
	if ok {
		return nil
	}
	if err = b.fs.Create(ctx, URL, file.DefaultDirOsMode, true); err != nil {
		return fmt.Errorf("failed to create %v: %w", URL, err)
	}
	return nil
}

// relativeOutput returns the output directory relative to the input
// directory when it is nested inside it
func relativeOutput(input, output string) string {
	input = strings.TrimSuffix(input, "/")
	output = strings.TrimSuffix(output, "/")
	if !strings.HasPrefix(output, input+"/") {
		return ""
	}
	return strings.TrimPrefix(output, input+"/")
}
