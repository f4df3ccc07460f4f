package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/ramldoc/config"
	"github.com/erraggy/ramldoc/docgen"
	"github.com/erraggy/ramldoc/renderer"
	"github.com/erraggy/ramldoc/walker"
)

// RenderFlags contains flags for the render command
type RenderFlags struct {
	Template     string
	Engine       string
	Scope        string
	Section      string
	Output       string
	Dump         string
	MinifyAssets bool
	Params       map[string]string
	Verbose      bool
}

// SetupRenderFlags creates and configures a FlagSet for the render command.
// Returns the FlagSet and a RenderFlags struct with bound flag variables.
func SetupRenderFlags() (*flag.FlagSet, *RenderFlags) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(Stderr)
	flags := &RenderFlags{Params: map[string]string{}}

	fs.StringVar(&flags.Template, "template", config.DefaultTemplateFile, "template file")
	fs.StringVar(&flags.Engine, "engine", renderer.DefaultEngine, "template engine: "+strings.Join(renderer.Engines(), ", "))
	fs.StringVar(&flags.Scope, "scope", "", "public (default) or private")
	fs.StringVar(&flags.Section, "section", "", "section template variable")
	fs.StringVar(&flags.Output, "o", "", "output file (default: stdout)")
	fs.StringVar(&flags.Dump, "dump", config.DumpDisabled, "write the parsed tree as JSON to this path")
	fs.BoolVar(&flags.MinifyAssets, "minify-assets", false, "set the minifyAssets template variable")
	fs.Func("param", "template parameter as key=value (repeatable)", func(s string) error {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected key=value, got %q", s)
		}
		flags.Params[key] = value
		return nil
	})
	fs.BoolVar(&flags.Verbose, "v", false, "log debug output to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: ramldoc render [flags] <file|->\n\n")
		Writef(output, "Render one RAML document with a template, without a site build.\n")
		Writef(output, "api:// links are left as they are.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  ramldoc render -template api.html api.raml > api.html\n")
		Writef(output, "  ramldoc render -engine mustache -template api.mustache -o out.html api.raml\n")
		Writef(output, "  ramldoc render -scope private -param owner=platform -template api.html api.raml\n")
	}

	return fs, flags
}

// HandleRender executes the render command
func HandleRender(args []string) error {
	fs, flags := SetupRenderFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("render command requires exactly one file path")
	}
	if err := ValidateScope(flags.Scope); err != nil {
		return err
	}

	specPath := fs.Arg(0)
	cfg := config.Default()
	cfg.Template.File = flags.Template
	cfg.Template.Engine = flags.Engine
	cfg.Template.MinifyAssets = flags.MinifyAssets
	for k, v := range flags.Params {
		cfg.Template.Params[k] = v
	}
	if flags.Scope != "" {
		cfg.Scope = walker.Scope(flags.Scope)
	}
	cfg.Section = flags.Section
	cfg.Dump = flags.Dump

	logger := NewLogger(flags.Verbose)
	plugin, err := docgen.New(cfg, docgen.WithLogger(logger))
	if err != nil {
		return err
	}

	result, err := parseSpec(specPath, logger)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	doc, err := plugin.Prepare(result)
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(result.SourcePath), filepath.Ext(result.SourcePath))
	html, err := plugin.Render(name, doc, nil)
	if err != nil {
		return err
	}

	if flags.Output == "" {
		Writef(Stdout, "%s", html)
		return nil
	}
	if err := os.WriteFile(flags.Output, []byte(html), 0o644); err != nil { //nolint:gosec // G306: rendered page meant to be served
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Debug("wrote rendered page", "path", flags.Output, "bytes", len(html))
	return nil
}
