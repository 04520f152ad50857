package build

import (
	"github.com/viant/afs"
	"github.com/viant/sequencescript/compiler"
	"golang.org/x/text/encoding"
	"io"
	"log/slog"
)

type Option func(*builder)

func WithFS(fs afs.Service) Option {
	return func(b *builder) {
		b.fs = fs
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) {
		b.logger = logger
	}
}

// WithErrorWriter sets where diagnostics are printed, stderr by default
func WithErrorWriter(w io.Writer) Option {
	return func(b *builder) {
		b.stderr = w
	}
}

// WithEmitter replaces the manifest emitter
func WithEmitter(emitter compiler.Emitter) Option {
	return func(b *builder) {
		b.emitter = emitter
	}
}

// WithGraphExporter registers an exporter that receives the dependency graph of the run.
func WithGraphExporter(exporter GraphExporter) Option {
	return func(b *builder) {
		b.exporter = exporter
	}
}

// WithEncoding sets the source text encoding
func WithEncoding(enc encoding.Encoding) Option {
	return func(b *builder) {
		b.compilerOptions = append(b.compilerOptions, compiler.WithEncoding(enc))
	}
}
