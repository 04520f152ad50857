package registry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/sequencescript/registry"
)

func populate(r registry.Registry) {
	r.SetInt32("files/a.ss/deps_count", 2)
	r.SetString("files/a.ss/deps_0", "b.ss")
	r.SetString("empty", "")
	r.SetBlob("blob", []byte{0, 1, 2, 255})
}

func verify(t *testing.T, r registry.Registry) {
	count, ok := r.GetInt32("files/a.ss/deps_count")
	assert.True(t, ok)
	assert.EqualValues(t, 2, count)

	dep, ok := r.GetString("files/a.ss/deps_0")
	assert.True(t, ok)
	assert.Equal(t, "b.ss", dep)

	empty, ok := r.GetString("empty")
	assert.True(t, ok)
	assert.Equal(t, "", empty)

	blob, ok := r.GetBlob("blob")
	assert.True(t, ok)
	assert.Equal(t, []byte{0, 1, 2, 255}, blob)
}

func TestMemory(t *testing.T) {
	r := registry.NewMemory()
	assert.False(t, r.Exists("missing"))
	_, ok := r.GetString("missing")
	assert.False(t, ok)

	populate(r)
	verify(t, r)
	assert.Equal(t, 4, r.Len())

	var testCases = []struct {
		description string
		get         func() bool
	}{
		{description: "string as int32", get: func() bool { _, ok := r.GetInt32("files/a.ss/deps_0"); return ok }},
		{description: "int32 as string", get: func() bool { _, ok := r.GetString("files/a.ss/deps_count"); return ok }},
		{description: "string as blob", get: func() bool { _, ok := r.GetBlob("empty"); return ok }},
	}
	for _, testCase := range testCases {
		assert.False(t, testCase.get(), testCase.description)
	}

	r.SetString("files/a.ss/deps_count", "replaced")
	_, ok = r.GetInt32("files/a.ss/deps_count")
	assert.False(t, ok)
	assert.True(t, r.Exists("files/a.ss/deps_count"))
}

func TestMemory_BlobIsCopied(t *testing.T) {
	r := registry.NewMemory()
	value := []byte("abc")
	r.SetBlob("k", value)
	value[0] = 'x'
	stored, _ := r.GetBlob("k")
	assert.Equal(t, []byte("abc"), stored)
	stored[1] = 'y'
	again, _ := r.GetBlob("k")
	assert.Equal(t, []byte("abc"), again)
}

func TestFile_SaveAndOpen(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := filepath.Join(t.TempDir(), "state", "registry.yaml")

	r, err := registry.Open(ctx, fs, URL)
	require.NoError(t, err)
	assert.Zero(t, r.Len())
	populate(r)
	require.NoError(t, r.Save(ctx))

	_, err = os.Stat(URL)
	require.NoError(t, err)

	reopened, err := registry.Open(ctx, fs, URL)
	require.NoError(t, err)
	verify(t, reopened)
	assert.Equal(t, 4, reopened.Len())

	var _ registry.Saver = reopened
}

func TestFile_OpenInvalid(t *testing.T) {
	URL := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(URL, []byte("entries: [1, 2"), 0o644))
	_, err := registry.Open(context.Background(), afs.New(), URL)
	assert.Error(t, err)
}
