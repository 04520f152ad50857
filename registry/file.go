package registry

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// File is a Memory registry loaded from and saved to a YAML document
type File struct {
	*Memory
	URL string
	fs  afs.Service
}

type document struct {
	Entries map[string]fileEntry `yaml:"entries"`
}

type fileEntry struct {
	Int32  *int32  `yaml:"int32,omitempty"`
	String *string `yaml:"string,omitempty"`
	Blob   *string `yaml:"blob,omitempty"` // base64
}

// Open loads the registry stored at URL; a missing document yields an empty registry.
func Open(ctx context.Context, fs afs.Service, URL string) (*File, error) {
	if fs == nil {
		fs = afs.New()
	}
	ret := &File{Memory: NewMemory(), URL: URL, fs: fs}
	ok, err := fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check registry %v: %w", URL, err)
	}
	if !ok {
		return ret, nil
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %v: %w", URL, err)
	}
	doc := document{}
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode registry %v: %w", URL, err)
	}
	for key, item := range doc.Entries {
		switch {
		case item.Int32 != nil:
			ret.SetInt32(key, *item.Int32)
		case item.String != nil:
			ret.SetString(key, *item.String)
		case item.Blob != nil:
			blob, err := base64.StdEncoding.DecodeString(*item.Blob)
			if err != nil {
				return nil, fmt.Errorf("failed to decode registry blob %v: %w", key, err)
			}
			ret.SetBlob(key, blob)
		}
	}
	return ret, nil
}

// Save writes all entries to URL
func (f *File) Save(ctx context.Context) error {
	doc := document{Entries: map[string]fileEntry{}}
	f.mux.RLock()
	for key, value := range f.entries {
		item := fileEntry{Int32: value.int32Value, String: value.stringValue}
		if value.isBlob {
			encoded := base64.StdEncoding.EncodeToString(value.blobValue)
			item.Blob = &encoded
		}
		doc.Entries[key] = item
	}
	f.mux.RUnlock()
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	parent, _ := url.Split(f.URL, file.Scheme)
	if ok, _ := f.fs.Exists(ctx, parent); !ok {
		if err = f.fs.Create(ctx, parent, file.DefaultDirOsMode, true); err != nil {
			return fmt.Errorf("failed to create registry folder %v: %w", parent, err)
		}
	}
	if err = f.fs.Upload(ctx, f.URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write registry %v: %w", f.URL, err)
	}
	return nil
}
