package commands

import (
	"errors"
	"flag"
	"fmt"
)

// ParseFlags contains flags for the parse command
type ParseFlags struct {
	Format  string
	Full    bool
	Quiet   bool
	Verbose bool
}

// parseSummary is the structured output of the parse command.
type parseSummary struct {
	Document      string   `json:"document" yaml:"document"`
	RAMLVersion   string   `json:"ramlVersion,omitempty" yaml:"ramlVersion,omitempty"`
	Title         string   `json:"title" yaml:"title"`
	Version       string   `json:"version,omitempty" yaml:"version,omitempty"`
	BaseURI       string   `json:"baseUri,omitempty" yaml:"baseUri,omitempty"`
	ResourceCount int      `json:"resourceCount" yaml:"resourceCount"`
	MethodCount   int      `json:"methodCount" yaml:"methodCount"`
	TraitCount    int      `json:"traitCount" yaml:"traitCount"`
	Warnings      []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Tree          any      `json:"tree,omitempty" yaml:"tree,omitempty"`
}

// SetupParseFlags creates and configures a FlagSet for the parse command.
// Returns the FlagSet and a ParseFlags struct with bound flag variables.
func SetupParseFlags() (*flag.FlagSet, *ParseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(Stderr)
	flags := &ParseFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, yaml")
	fs.BoolVar(&flags.Full, "full", false, "include the normalized resource tree")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "log debug output to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: ramldoc parse [flags] <file|->\n\n")
		Writef(output, "Parse a RAML 0.8 document and print its structure.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  ramldoc parse api.raml\n")
		Writef(output, "  ramldoc parse -format json -full api.raml\n")
		Writef(output, "  cat api.raml | ramldoc parse -q -format yaml -\n")
		Writef(output, "\nIncludes are resolved relative to the document; stdin resolves them\n")
		Writef(output, "relative to the working directory.\n")
	}

	return fs, flags
}

// HandleParse executes the parse command
func HandleParse(args []string) error {
	fs, flags := SetupParseFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)
	result, err := parseSpec(specPath, NewLogger(flags.Verbose))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}

	doc := result.Document
	summary := parseSummary{
		Document:      FormatSpecPath(specPath),
		RAMLVersion:   result.RAMLVersion,
		Title:         doc.Title(),
		Version:       doc.Version(),
		BaseURI:       doc.BaseURI(),
		ResourceCount: result.Stats.ResourceCount,
		MethodCount:   result.Stats.MethodCount,
		TraitCount:    result.Stats.TraitCount,
		Warnings:      result.Warnings,
	}
	if flags.Full {
		summary.Tree = doc.Node().Interface()
	}

	if flags.Format != FormatText {
		return OutputStructured(Stdout, summary, flags.Format)
	}

	if !flags.Quiet {
		Writef(Stderr, "RAML Document Parser\n")
		Writef(Stderr, "====================\n\n")
		OutputSpecHeader(Stderr, specPath, result)
		OutputSpecStats(Stderr, result)
		Writef(Stderr, "\n")
		if len(result.Warnings) > 0 {
			Writef(Stderr, "Warnings:\n")
			for _, w := range result.Warnings {
				Writef(Stderr, "  - %s\n", w)
			}
			Writef(Stderr, "\n")
		}
	}

	Writef(Stdout, "Title: %s\n", summary.Title)
	if summary.Version != "" {
		Writef(Stdout, "Version: %s\n", summary.Version)
	}
	if summary.BaseURI != "" {
		Writef(Stdout, "Base URI: %s\n", summary.BaseURI)
	}
	rows := make([][]string, 0, len(doc.Resources()))
	for _, r := range doc.Resources() {
		rows = append(rows, []string{r.RelativeURI(), r.DisplayName(), fmt.Sprint(len(r.Methods())), fmt.Sprint(len(r.Resources()))})
	}
	if len(rows) > 0 {
		Writef(Stdout, "\n")
		RenderSummaryTable(Stdout, []string{"RESOURCE", "NAME", "METHODS", "CHILDREN"}, rows, flags.Quiet)
	}
	if flags.Full {
		Writef(Stdout, "\n")
		return RenderDetail(Stdout, summary.Tree, FormatText)
	}
	return nil
}
