package compiler

import (
	"github.com/viant/afs"
	"golang.org/x/text/encoding"
	"io"
	"log/slog"
)

type Option func(*Context)

// WithIncludeResolver sets the import resolver; without one imports are
// recorded as written.
func WithIncludeResolver(resolver IncludeResolver) Option {
	return func(c *Context) {
		c.resolver = resolver
	}
}

func WithFS(fs afs.Service) Option {
	return func(c *Context) {
		c.fs = fs
	}
}

// WithEncoding sets the source text encoding, UTF-8 by default
func WithEncoding(enc encoding.Encoding) Option {
	return func(c *Context) {
		c.encoding = enc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// WithEmitter replaces the default manifest emitter
func WithEmitter(emitter Emitter) Option {
	return func(c *Context) {
		c.emitter = emitter
	}
}

// WithErrorWriter sets where ThrowIfErrors prints diagnostics
func WithErrorWriter(w io.Writer) Option {
	return func(c *Context) {
		c.stderr = w
	}
}
