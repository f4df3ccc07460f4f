package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/ramldoc/config"
	"github.com/erraggy/ramldoc/docgen"
	"github.com/erraggy/ramldoc/pipeline"
	"github.com/erraggy/ramldoc/walker"
)

// DefaultConfigFile is read by build when -config is not given.
const DefaultConfigFile = "ramldoc.yaml"

// BuildFlags contains flags for the build command
type BuildFlags struct {
	Config      string
	Src         string
	Dest        string
	Scope       string
	Section     string
	Dump        string
	Clean       bool
	Concurrency int
	Metadata    map[string]string
	Quiet       bool
	Verbose     bool
}

// SetupBuildFlags creates and configures a FlagSet for the build command.
// Returns the FlagSet and a BuildFlags struct with bound flag variables.
func SetupBuildFlags() (*flag.FlagSet, *BuildFlags) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(Stderr)
	flags := &BuildFlags{Metadata: map[string]string{}}

	fs.StringVar(&flags.Config, "config", DefaultConfigFile, "configuration file (.yaml, .yml, .toml, .json)")
	fs.StringVar(&flags.Src, "src", "", "source directory, overrides the configured src")
	fs.StringVar(&flags.Dest, "dest", pipeline.DefaultDestination, "destination directory")
	fs.StringVar(&flags.Scope, "scope", "", "public or private, overrides the configured scope")
	fs.StringVar(&flags.Section, "section", "", "section template variable, overrides the configured section")
	fs.StringVar(&flags.Dump, "dump", "", "debug dump path, '-' disables it")
	fs.BoolVar(&flags.Clean, "clean", false, "remove the destination directory before writing")
	fs.IntVar(&flags.Concurrency, "concurrency", 0, "maximum RAML files processed at once (0 = no limit)")
	fs.Func("meta", "global metadata as key=value (repeatable)", func(s string) error {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected key=value, got %q", s)
		}
		flags.Metadata[key] = value
		return nil
	})
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no summary")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no summary")
	fs.BoolVar(&flags.Verbose, "v", false, "log debug output to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: ramldoc build [flags]\n\n")
		Writef(output, "Build the site: copy the source directory to the destination and add a\n")
		Writef(output, "rendered documentation page for each configured RAML file.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nRelative src, template.file and dump paths in the configuration file are\n")
		Writef(output, "resolved against the directory holding it.\n")
		Writef(output, "\nExamples:\n")
		Writef(output, "  ramldoc build\n")
		Writef(output, "  ramldoc build -config site/ramldoc.toml -dest public -clean\n")
		Writef(output, "  ramldoc build -scope private -meta env=staging -v\n")
	}

	return fs, flags
}

// HandleBuild executes the build command
func HandleBuild(ctx context.Context, args []string) error {
	fs, flags := SetupBuildFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("build command takes no arguments, got %q", fs.Args())
	}
	if err := ValidateScope(flags.Scope); err != nil {
		return err
	}

	cfg, err := LoadBuildConfig(flags)
	if err != nil {
		return err
	}

	logger := NewLogger(flags.Verbose)
	plugin, err := docgen.New(cfg, docgen.WithLogger(logger), docgen.WithConcurrency(flags.Concurrency))
	if err != nil {
		return err
	}

	metadata := make(map[string]any, len(flags.Metadata))
	for k, v := range flags.Metadata {
		metadata[k] = v
	}
	p := pipeline.New(
		pipeline.WithSource(cfg.Src),
		pipeline.WithDestination(flags.Dest),
		pipeline.WithClean(flags.Clean),
		pipeline.WithMetadata(metadata),
		pipeline.WithLogger(logger),
	).Use(plugin)

	start := time.Now()
	files, err := p.Build(ctx)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	if !flags.Quiet {
		Writef(Stderr, "Built %d file(s) from %s into %s (%d API page(s), scope %s) in %v\n",
			files.Len(), cfg.Src, flags.Dest, len(cfg.Files), cfg.Scope, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// LoadBuildConfig reads the configuration file named by flags, resolves
// its relative paths, and applies the command line overrides.
func LoadBuildConfig(flags *BuildFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.Config)
	if err != nil {
		return nil, err
	}
	cfg.ResolvePaths(filepath.Dir(flags.Config))

	if flags.Src != "" {
		cfg.Src = flags.Src
	}
	if flags.Scope != "" {
		cfg.Scope = walker.Scope(flags.Scope)
	}
	if flags.Section != "" {
		cfg.Section = flags.Section
	}
	if flags.Dump != "" {
		cfg.Dump = flags.Dump
	}
	return cfg, cfg.Validate()
}
