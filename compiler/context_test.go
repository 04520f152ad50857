package compiler_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/sequencescript/ast"
	"github.com/viant/sequencescript/compiler"
	"github.com/viant/sequencescript/diag"
	"github.com/viant/sequencescript/internal/fixture"
	"github.com/viant/sequencescript/optional"
	"gopkg.in/yaml.v3"
)

func TestContext_CompileSource(t *testing.T) {
	source := `
global int counter = 0;
global const string name = "x";
proc int add(int a, int b) { return a + b; }
proc void tick() { counter++; }
extern proc float native(handle h);
`
	c := compiler.New()
	file, err := c.CompileSource(context.Background(), "unit.ss", source)
	require.NoError(t, err)
	assert.Empty(t, c.Errors())

	assert.Equal(t, map[string]compiler.ValueType{"counter": compiler.Integer, "name": compiler.String}, file.Globals)
	require.Len(t, file.Functions, 3)

	add := file.Functions["add"]
	assert.Equal(t, optional.Of(compiler.Integer), add.ReturnType)
	assert.Equal(t, []compiler.ValueType{compiler.Integer, compiler.Integer}, add.ParameterTypes)
	assert.False(t, add.System)

	tick := file.Functions["tick"]
	assert.False(t, tick.ReturnType.IsPresent())
	assert.Empty(t, tick.ParameterTypes)

	native := file.Functions["native"]
	assert.True(t, native.Extern)
	assert.Equal(t, []compiler.ValueType{compiler.Handle}, native.ParameterTypes)

	registered, ok := c.Lookup("unit.ss")
	require.True(t, ok)
	assert.Same(t, file, registered)
	assert.Len(t, c.Files(), 1)
}

func TestContext_InvalidSignatures(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
	}{
		{description: "bad parameter type", source: "proc int f(int a, widget b, bool c) { return a; }"},
		{description: "bad first parameter", source: "proc void f(widget a) {}"},
		{description: "bad return type", source: "proc widget f(int a) {}"},
		{description: "bad extern parameter", source: "extern proc void f(int a, widget b);"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			c := compiler.New()
			file, err := c.CompileSource(context.Background(), "unit.ss", testCase.source+"\nproc void g(int a, float b) {}")
			require.NoError(t, err)
			assert.NotEmpty(t, c.Errors())
			_, ok := file.Functions["f"]
			assert.False(t, ok)
			require.Contains(t, file.Functions, "g")
			assert.Equal(t, []compiler.ValueType{compiler.Integer, compiler.Floating}, file.Functions["g"].ParameterTypes)
			for _, function := range file.Functions {
				for _, node := range file.AST.Nodes {
					if procedure, ok := node.(*ast.ProcedureDefinitionNode); ok && procedure.Identifier.Lexeme == function.Name {
						assert.Len(t, function.ParameterTypes, len(procedure.Parameters))
					}
				}
			}
		})
	}
}

func TestContext_Reference(t *testing.T) {
	c := compiler.New()
	ctx := context.Background()
	library, err := c.CompileSource(ctx, "lib.ss", "proc int one() { return 1; }")
	require.NoError(t, err)

	reference := compiler.New()
	other, err := reference.CompileSource(ctx, "other.ss", "proc int two() { return 2; } proc void broken( {}")
	require.NoError(t, err)

	c.Reference(other)
	c.Reference(&compiler.File{ResolvePath: "lib.ss"})
	found, ok := c.Lookup("other.ss")
	require.True(t, ok)
	assert.Same(t, other, found)
	registered, _ := c.Lookup("lib.ss")
	assert.Same(t, library, registered, "registered files win over references")

	assert.Len(t, c.Files(), 1)
	assert.Empty(t, c.Errors(), "reference diagnostics are not merged")

	entry, err := c.CompileSource(ctx, "main.ss", `import "other.ss"; proc void main() {}`)
	require.NoError(t, err)
	function, ok := c.Function(entry, "two")
	require.True(t, ok)
	assert.Equal(t, "two", function.Name)
}

func TestContext_StandardLibrary(t *testing.T) {
	c := compiler.New()
	stdlib, err := c.CreateStandardLib(context.Background(), "extern proc void print(string message);")
	require.NoError(t, err)
	assert.True(t, stdlib.Functions["print"].System)

	file, err := c.CompileSource(context.Background(), "main.ss", `proc void main() { print("hi"); }`)
	require.NoError(t, err)

	found, ok := c.Lookup(compiler.StandardLibraryPath)
	require.True(t, ok)
	assert.Same(t, stdlib, found)
	assert.Equal(t, []*compiler.File{file}, c.Files())

	function, ok := c.Function(file, "print")
	require.True(t, ok)
	assert.True(t, function.System)
	_, ok = c.Function(file, "missing")
	assert.False(t, ok)
}

func TestContext_ThrowIfErrors(t *testing.T) {
	stderr := &bytes.Buffer{}
	c := compiler.New(compiler.WithErrorWriter(stderr))
	ctx := context.Background()

	_, err := c.CompileSource(ctx, "good.ss", `proc void main() {}`)
	require.NoError(t, err)
	assert.NoError(t, c.ThrowIfErrors())
	assert.Empty(t, stderr.String())

	_, err = c.CompileSource(ctx, "bad.ss", "global int x\nproc void f() { @ }")
	require.NoError(t, err)
	err = c.ThrowIfErrors()
	require.Error(t, err)

	var failure *diag.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, c.Errors(), failure.Errors)
	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.Len(t, lines, len(failure.Errors))
	for i, compileError := range failure.Errors {
		assert.Equal(t, compileError.String(), lines[i])
		assert.Equal(t, "bad.ss", compileError.Location.File)
	}
	assert.Contains(t, lines, "bad.ss (2,16): error SS1001: Unexpected character '@'")

	c.ResetErrors()
	assert.NoError(t, c.ThrowIfErrors())
}

const includeArchive = `
-- main.ss --
import "lib/math.ss";
import ("lib/math.ss");
import "missing.ss";
import "../outside.ss";
proc void main() {}
-- lib/math.ss --
proc int square(int x) { return x * x; }
-- lib/util.ss --
import "lib/math.ss";
proc int cube(int x) { return square(x) * x; }
`

func TestContext_DirectoryResolver(t *testing.T) {
	dir := fixture.Extract(t, includeArchive)
	fs := afs.New()
	c := compiler.New(compiler.WithFS(fs), compiler.WithIncludeResolver(compiler.NewDirectoryResolver(fs, dir)))
	ctx := context.Background()

	for _, resolvePath := range []string{"lib/math.ss", "lib/util.ss", "main.ss"} {
		_, err := c.BeginCompiling(ctx, resolvePath, filepath.Join(dir, resolvePath), "")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"lib/math.ss"}, c.Dependencies("main.ss"))
	assert.Equal(t, []string{"lib/math.ss"}, c.Dependencies("lib/util.ss"))
	assert.Empty(t, c.Dependencies("lib/math.ss"))

	errors := c.Errors()
	require.Len(t, errors, 2)
	assert.Equal(t, diag.CodeUnresolvedImport, errors[0].Code)
	assert.Equal(t, "Could not resolve included module 'missing.ss' imported from 'main.ss'", errors[0].Message)
	assert.Equal(t, 3, errors[0].Location.Line)
	assert.Equal(t, "Could not resolve included module '../outside.ss' imported from 'main.ss'", errors[1].Message)

	util, _ := c.Lookup("lib/util.ss")
	function, ok := c.Function(util, "square")
	require.True(t, ok)
	assert.Equal(t, "square", function.Name)

	math, ok := c.ResolveInclude("lib/util.ss", "math.ss")
	require.True(t, ok)
	assert.Equal(t, "lib/math.ss", math.ResolvePath)
}

func TestDirectoryResolver_Find(t *testing.T) {
	dir := fixture.Extract(t, `
-- a.ss --
proc void root() {}
-- sub/a.ss --
proc void nested() {}
-- aux.ss --
proc void aux() {}
-- con.ss --
proc void con() {}
-- it's.ss --
proc void quoted() {}
-- com1.ss --
proc void com() {}
`)
	resolver := compiler.NewDirectoryResolver(afs.New(), dir)
	var testCases = []struct {
		description string
		from        string
		requested   string
		expect      string
	}{
		{description: "root file", from: "main.ss", requested: "a.ss", expect: "a.ss"},
		{description: "root relative from sub directory", from: "sub/main.ss", requested: "a.ss", expect: "a.ss"},
		{description: "nested path", from: "sub/main.ss", requested: "sub/a.ss", expect: "sub/a.ss"},
		{description: "dot prefix", from: "main.ss", requested: "./sub/../a.ss", expect: "a.ss"},
		{description: "reserved device name", from: "main.ss", requested: "aux.ss", expect: "aux.ss"},
		{description: "reserved console name", from: "main.ss", requested: "con.ss", expect: "con.ss"},
		{description: "reserved port name", from: "main.ss", requested: "com1.ss", expect: "com1.ss"},
		{description: "apostrophe", from: "main.ss", requested: "it's.ss", expect: "it's.ss"},
		{description: "missing", from: "main.ss", requested: "b.ss"},
		{description: "parent", from: "sub/main.ss", requested: "../a.ss"},
		{description: "absolute", from: "main.ss", requested: "/a.ss"},
		{description: "empty", from: "main.ss", requested: ""},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			include, err := resolver.Find(context.Background(), testCase.from, testCase.requested)
			require.NoError(t, err)
			if testCase.expect == "" {
				assert.Nil(t, include)
				return
			}
			require.NotNil(t, include)
			assert.Equal(t, testCase.expect, include.ResolvePath)
			assert.Contains(t, include.URL, testCase.expect)
		})
	}
}

func TestContext_ImportsReservedNames(t *testing.T) {
	dir := fixture.Extract(t, `
-- aux.ss --
proc int aux() { return 1; }
-- con.ss --
proc int con() { return 2; }
-- main.ss --
import "aux.ss";
import "con.ss";
proc int main() { return aux() + con(); }
`)
	fs := afs.New()
	c := compiler.New(compiler.WithFS(fs), compiler.WithIncludeResolver(compiler.NewDirectoryResolver(fs, dir)))
	file, err := c.BeginCompiling(context.Background(), "main.ss", filepath.Join(dir, "main.ss"), "")
	require.NoError(t, err)
	assert.Empty(t, c.Errors())
	assert.Equal(t, []string{"aux.ss", "con.ss"}, file.Imports)
}

func TestContext_ImportsWithoutResolver(t *testing.T) {
	c := compiler.New()
	file, err := c.CompileSource(context.Background(), "main.ss", `import "./a.ss"; import "b/../c.ss"; import "a.ss";`)
	require.NoError(t, err)
	assert.Empty(t, c.Errors())
	assert.Equal(t, []string{"a.ss", "c.ss"}, file.Imports)
}

func TestContext_ResolverFunc(t *testing.T) {
	var requests []string
	resolver := compiler.ResolverFunc(func(ctx context.Context, from, requested string) (*compiler.Include, error) {
		requests = append(requests, from+"->"+requested)
		if requested == "known.ss" {
			return &compiler.Include{ResolvePath: "pkg/known.ss"}, nil
		}
		return nil, nil
	})
	c := compiler.New(compiler.WithIncludeResolver(resolver))
	file, err := c.CompileSource(context.Background(), "main.ss", `import "known.ss"; import "other.ss";`)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.ss->known.ss", "main.ss->other.ss"}, requests)
	assert.Equal(t, []string{"pkg/known.ss"}, file.Imports)
	assert.Equal(t, []string{diag.CodeUnresolvedImport}, codes(c.Errors()))
}

func TestContext_ConcurrentParse(t *testing.T) {
	dir := fixture.Extract(t, includeArchive)
	c := compiler.New()
	ctx := context.Background()
	paths := []string{"main.ss", "lib/math.ss", "lib/util.ss"}
	files := make([]*compiler.File, len(paths))
	wg := sync.WaitGroup{}
	for i, resolvePath := range paths {
		wg.Add(1)
		go func(i int, resolvePath string) {
			defer wg.Done()
			file, err := c.Parse(ctx, resolvePath, filepath.Join(dir, resolvePath), "")
			assert.NoError(t, err)
			files[i] = file
		}(i, resolvePath)
	}
	wg.Wait()
	assert.Empty(t, c.Files())
	for _, file := range files {
		c.Register(file)
	}
	registered := c.Files()
	require.Len(t, registered, 3)
	for i, file := range registered {
		assert.Equal(t, paths[i], file.ResolvePath)
	}
}

type manifest struct {
	Path      string   `yaml:"path"`
	Imports   []string `yaml:"imports"`
	Functions []struct {
		Name       string   `yaml:"name"`
		ReturnType string   `yaml:"returnType"`
		Parameters []string `yaml:"parameters"`
		Extern     bool     `yaml:"extern"`
	} `yaml:"functions"`
	Globals []struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	} `yaml:"globals"`
	Meta map[string]string `yaml:"meta"`
}

func TestManifestEmitter(t *testing.T) {
	dir := fixture.Extract(t, `
-- main.ss --
#version 2
import "lib.ss";
global float ratio;
global bool enabled;
proc void main() {}
extern proc string name(int id, bool short);
-- lib.ss --
proc void helper() {}
`)
	c := compiler.New()
	ctx := context.Background()
	output := filepath.Join(dir, "out", "nested", "main.ss")
	_, err := c.BeginCompiling(ctx, "main.ss", filepath.Join(dir, "main.ss"), output)
	require.NoError(t, err)
	require.NoError(t, c.Emit(ctx))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	actual := manifest{}
	require.NoError(t, yaml.Unmarshal(data, &actual))

	assert.Equal(t, "main.ss", actual.Path)
	assert.Equal(t, []string{"lib.ss"}, actual.Imports)
	require.Len(t, actual.Functions, 2)
	assert.Equal(t, "main", actual.Functions[0].Name)
	assert.Empty(t, actual.Functions[0].ReturnType)
	assert.Equal(t, "name", actual.Functions[1].Name)
	assert.Equal(t, "string", actual.Functions[1].ReturnType)
	assert.Equal(t, []string{"int", "bool"}, actual.Functions[1].Parameters)
	assert.True(t, actual.Functions[1].Extern)
	require.Len(t, actual.Globals, 2)
	assert.Equal(t, "enabled", actual.Globals[0].Name)
	assert.Equal(t, "bool", actual.Globals[0].Type)
	assert.Equal(t, "float", actual.Globals[1].Type)
	assert.Equal(t, map[string]string{"version": "2"}, actual.Meta)
}

func TestContext_EmitterFunc(t *testing.T) {
	var emitted []string
	c := compiler.New(compiler.WithEmitter(compiler.EmitterFunc(func(ctx context.Context, c *compiler.Context, f *compiler.File) error {
		emitted = append(emitted, f.ResolvePath)
		return nil
	})))
	ctx := context.Background()
	_, err := c.CreateStandardLib(ctx, "")
	require.NoError(t, err)
	for _, resolvePath := range []string{"b.ss", "a.ss"} {
		_, err = c.CompileSource(ctx, resolvePath, "")
		require.NoError(t, err)
	}
	require.NoError(t, c.Emit(ctx))
	assert.Equal(t, []string{"b.ss", "a.ss"}, emitted)
}

func codes(errors []diag.CompileError) []string {
	var result []string
	for _, e := range errors {
		result = append(result, e.Code)
	}
	return result
}
