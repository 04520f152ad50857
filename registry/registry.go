// Package registry stores typed values under string keys. The build keeps
// per file dependency lists and the standard library hash here between runs.
package registry

import "context"

// Registry is a typed key value store. Getters report false when the key is
// missing or holds a value of another type.
type Registry interface {
	Exists(key string) bool
	GetInt32(key string) (int32, bool)
	SetInt32(key string, value int32)
	GetString(key string) (string, bool)
	SetString(key string, value string)
	GetBlob(key string) ([]byte, bool)
	SetBlob(key string, value []byte)
}

// Saver is implemented by registries that need an explicit flush
type Saver interface {
	Save(ctx context.Context) error
}
