package build_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/sequencescript/build"
	"github.com/viant/sequencescript/internal/fixture"
)

func TestLoadConfig(t *testing.T) {
	dir := fixture.Extract(t, `
-- sequencescript.yaml --
input: scripts
output: /var/tmp/out
stdlib: lib/std.ss
exclude: "*_test.ss"
concurrency: 3
-- lib/std.ss --
extern proc void print(string message);
`)
	ctx := context.Background()
	config, err := build.LoadConfig(ctx, afs.New(), filepath.Join(dir, build.ConfigFile))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "scripts"), config.Input)
	assert.Equal(t, "/var/tmp/out", config.Output)
	assert.Equal(t, filepath.Join(dir, "lib", "std.ss"), config.Stdlib)
	assert.Equal(t, "*.ss", config.Pattern, "defaults survive")
	assert.Equal(t, "*_test.ss", config.Exclude)
	assert.Equal(t, filepath.Join(dir, ".sequencescript", "registry.yaml"), config.Registry)
	assert.Equal(t, 3, config.Concurrency)

	options, err := config.Options(ctx, afs.New())
	require.NoError(t, err)
	assert.Equal(t, "extern proc void print(string message);\n", options.StandardLibrarySource)
	assert.Equal(t, config.Input, options.InputDirectory)
	assert.Equal(t, 3, options.Concurrency)
	require.NotNil(t, options.Registry)
	assert.False(t, options.Registry.Exists("sequencescript/stdlib_hash"))
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := fixture.Extract(t, `
-- broken.yaml --
input: [
-- missing-stdlib.yaml --
stdlib: nope.ss
`)
	ctx := context.Background()
	_, err := build.LoadConfig(ctx, afs.New(), filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)

	_, err = build.LoadConfig(ctx, afs.New(), filepath.Join(dir, "broken.yaml"))
	assert.Error(t, err)

	config, err := build.LoadConfig(ctx, afs.New(), filepath.Join(dir, "missing-stdlib.yaml"))
	require.NoError(t, err)
	_, err = config.Options(ctx, afs.New())
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	config := build.DefaultConfig()
	assert.Equal(t, "*.ss", config.Pattern)
	assert.Equal(t, 1, config.Concurrency)
	assert.Empty(t, config.Stdlib)
}
