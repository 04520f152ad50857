package compiler

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"path"
	"strings"
)

// Include is a resolved import target
type Include struct {
	// ResolvePath is the slash separated path relative to the resolver root
	ResolvePath string
	URL         string
}

// IncludeResolver locates imported units. Find returns nil, nil when the
// requested path does not exist.
type IncludeResolver interface {
	Find(ctx context.Context, from, requested string) (*Include, error)
}

// ResolverFunc adapts a function to IncludeResolver
type ResolverFunc func(ctx context.Context, from, requested string) (*Include, error)

func (f ResolverFunc) Find(ctx context.Context, from, requested string) (*Include, error) {
	return f(ctx, from, requested)
}

// DirectoryResolver resolves imports against a root directory. The
// requested path is always taken relative to the root, never to the
// importing unit.
type DirectoryResolver struct {
	root string
	fs   afs.Service
}

// NewDirectoryResolver creates a resolver rooted at root
func NewDirectoryResolver(fs afs.Service, root string) *DirectoryResolver {
	if fs == nil {
		fs = afs.New()
	}
	return &DirectoryResolver{root: root, fs: fs}
}

func (r *DirectoryResolver) Find(ctx context.Context, from, requested string) (*Include, error) {
	candidate, ok := rootRelative(requested)
	if !ok {
		return nil, nil
	}
	URL := url.Join(r.root, candidate)
	exists, err := r.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check include %v: %w", URL, err)
	}
	if !exists {
		return nil, nil
	}
	return &Include{ResolvePath: candidate, URL: URL}, nil
}

// rootRelative cleans requested and rejects paths leaving the root
func rootRelative(requested string) (string, bool) {
	if requested == "" || path.IsAbs(requested) {
		return "", false
	}
	candidate := path.Clean(requested)
	if candidate == "." || candidate == ".." || strings.HasPrefix(candidate, "../") {
		return "", false
	}
	return candidate, true
}
