package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/sequencescript/internal/fixture"
)

func TestRun(t *testing.T) {
	dir := fixture.Extract(t, `
-- sequencescript.yaml --
input: scripts
output: out
stdlib: std.ss
registry: state/registry.yaml
-- std.ss --
extern proc void print(string message);
-- scripts/main.ss --
import "util.ss";
proc void main() { print(greeting()); }
-- scripts/util.ss --
proc string greeting() { return "hi"; }
-- broken/bad.ss --
proc void f( {
`)
	ctx := context.Background()
	config := filepath.Join(dir, "sequencescript.yaml")

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(ctx, []string{"-config", config, "-graph", filepath.Join(dir, "graph.yaml")}, stdout, stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "compiled 2 of 2 files\n", stdout.String())
	assert.FileExists(t, filepath.Join(dir, "out", "main.ss"))
	assert.FileExists(t, filepath.Join(dir, "state", "registry.yaml"))
	assert.FileExists(t, filepath.Join(dir, "graph.yaml"))

	stdout.Reset()
	code = run(ctx, []string{"-config", config, "-input", filepath.Join(dir, "broken"), "-output", filepath.Join(dir, "out-broken")}, stdout, stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "bad.ss (1,")
	assert.Contains(t, stderr.String(), "compilation failed")

	code = run(ctx, []string{"-unknown"}, stdout, stderr)
	assert.Equal(t, 2, code)

	code = run(ctx, []string{"-config", filepath.Join(dir, "absent.yaml")}, stdout, stderr)
	assert.Equal(t, 1, code)
}

func TestRun_Flags(t *testing.T) {
	dir := fixture.Extract(t, `
-- in/a.ss --
proc void a() {}
-- in/b.ss --
proc void b() {}
`)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(context.Background(), []string{
		"-input", filepath.Join(dir, "in"),
		"-output", filepath.Join(dir, "out"),
		"-registry", filepath.Join(dir, "registry.yaml"),
		"-exclude", "b.ss",
		"-j", "2",
		"-v",
	}, stdout, stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "compiled 1 of 1 files\n", stdout.String())
	assert.FileExists(t, filepath.Join(dir, "out", "a.ss"))
	assert.NoFileExists(t, filepath.Join(dir, "out", "b.ss"))
	assert.Contains(t, stderr.String(), "level=DEBUG")
}
