// Package commands provides CLI command handlers for ramldoc.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/ramldoc"
	"github.com/erraggy/ramldoc/parser"
	"github.com/erraggy/ramldoc/walker"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Stdout and Stderr are where commands write. Tests replace them.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// ValidateScope validates a scope flag value. Empty is allowed and means
// the configured or default scope.
func ValidateScope(scope string) error {
	if scope != "" && !walker.Scope(scope).IsValid() {
		return fmt.Errorf("invalid scope '%s'. Valid scopes: %s, %s", scope, walker.ScopePublic, walker.ScopePrivate)
	}
	return nil
}

// OutputStructured writes data in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", strings.TrimRight(string(bytes), "\n"))
	return nil
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// FormatSpecPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// NewLogger returns the logger commands pass to the library packages:
// warnings and errors on stderr, plus debug output when verbose.
func NewLogger(verbose bool) parser.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return parser.NewSlogAdapter(slog.New(slog.NewTextHandler(Stderr, &slog.HandlerOptions{Level: level})))
}

// parseSpec parses a RAML file from a file path or stdin ("-").
func parseSpec(specPath string, logger parser.Logger) (*parser.ParseResult, error) {
	opts := []parser.Option{parser.WithLogger(logger)}
	if specPath == StdinFilePath {
		opts = append(opts, parser.WithReader(os.Stdin), parser.WithSourceName("stdin.raml"))
	} else {
		opts = append(opts, parser.WithFilePath(specPath))
	}
	return parser.ParseWithOptions(opts...)
}

// OutputSpecHeader outputs the common document header.
func OutputSpecHeader(w io.Writer, specPath string, result *parser.ParseResult) {
	Writef(w, "ramldoc version: %s\n", ramldoc.Version())
	Writef(w, "Document: %s\n", FormatSpecPath(specPath))
	Writef(w, "RAML Version: %s\n", result.RAMLVersion)
}

// OutputSpecStats outputs the common document statistics.
func OutputSpecStats(w io.Writer, result *parser.ParseResult) {
	Writef(w, "Source Size: %d bytes\n", len(result.Source))
	Writef(w, "Resources: %d\n", result.Stats.ResourceCount)
	Writef(w, "Methods: %d\n", result.Stats.MethodCount)
	Writef(w, "Traits: %d\n", result.Stats.TraitCount)
	Writef(w, "Load Time: %v\n", result.LoadTime)
}
