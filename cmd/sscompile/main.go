// Command sscompile incrementally compiles a directory of SequenceScript files.
//
// Usage:
//
//	sscompile [-config sequencescript.yaml] [-input dir] [-output dir] [-stdlib file]
//	          [-pattern glob] [-exclude glob] [-registry file] [-graph file] [-j n] [-v]
//
// Without -config the nearest sequencescript.yaml above the working
// directory is used when present. Flags override configured values.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/sequencescript/build"
	"github.com/viant/sequencescript/diag"
	"github.com/viant/sequencescript/project"
	"io"
	"log/slog"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("sscompile", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configURL := flags.String("config", "", "configuration file")
	input := flags.String("input", "", "input directory")
	output := flags.String("output", "", "output directory")
	stdlib := flags.String("stdlib", "", "standard library source file")
	pattern := flags.String("pattern", "", "include glob")
	exclude := flags.String("exclude", "", "exclude glob")
	registryURL := flags.String("registry", "", "dependency registry file")
	graph := flags.String("graph", "", "write the dependency graph to this file")
	concurrency := flags.Int("j", 0, "parallel parse workers")
	verbose := flags.Bool("v", false, "debug logging")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	fs := afs.New()

	if *configURL == "" {
		if wd, err := os.Getwd(); err == nil {
			if detected, err := project.New().Detect(wd); err == nil && detected.HasConfig() {
				*configURL = detected.ConfigPath
			}
		}
	}
	config := build.DefaultConfig()
	if *configURL != "" {
		loaded, err := build.LoadConfig(ctx, fs, *configURL)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			return 1
		}
		config = loaded
		logger.Debug("loaded config", "path", *configURL)
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			config.Input = *input
		case "output":
			config.Output = *output
		case "stdlib":
			config.Stdlib = *stdlib
		case "pattern":
			config.Pattern = *pattern
		case "exclude":
			config.Exclude = *exclude
		case "registry":
			config.Registry = *registryURL
		case "graph":
			config.Graph = *graph
		case "j":
			config.Concurrency = *concurrency
		}
	})

	options, err := config.Options(ctx, fs)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}
	buildOptions := []build.Option{
		build.WithFS(fs),
		build.WithLogger(logger),
		build.WithErrorWriter(stderr),
	}
	if config.Graph != "" {
		buildOptions = append(buildOptions, build.WithGraphExporter(build.NewGraphWriter(fs, config.Graph)))
	}
	result, err := build.CompileDirectory(ctx, options, buildOptions...)
	if err != nil {
		var failure *diag.Failure
		if errors.As(err, &failure) {
			fmt.Fprintln(stderr, failure.Error())
		} else {
			logger.Error("build failed", "error", err)
		}
		return 1
	}
	fmt.Fprintf(stdout, "compiled %d of %d files\n", len(result.Recompiled), len(result.Files))
	return 0
}
