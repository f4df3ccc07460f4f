package commands

import (
	"errors"
	"flag"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/ramldoc/helpers"
	"github.com/erraggy/ramldoc/parser"
	"github.com/erraggy/ramldoc/walker"
)

// HandleWalk routes the walk command to the appropriate subcommand handler.
func HandleWalk(args []string) error {
	if len(args) == 0 {
		printWalkUsage()
		return fmt.Errorf("walk command requires a subcommand")
	}

	subcommand := args[0]
	if subcommand == "--help" || subcommand == "-h" || subcommand == "help" {
		printWalkUsage()
		return nil
	}

	subArgs := args[1:]
	switch subcommand {
	case "resources":
		return handleWalkResources(subArgs)
	case "methods":
		return handleWalkMethods(subArgs)
	default:
		printWalkUsage()
		return fmt.Errorf("unknown walk subcommand: %s", subcommand)
	}
}

// WalkFlags contains common flags shared by all walk subcommands.
type WalkFlags struct {
	Format  string // Output format: text, json, yaml.
	Quiet   bool   // Suppress headers and decoration for piping.
	Detail  bool   // Show full node instead of summary table.
	Scope   string // public or private.
	Path    string // Resource URL filter, * matches one segment.
	Method  string // HTTP method filter.
	Verbose bool
}

func (f *WalkFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.Format, "format", FormatText, "Output format: text, json, yaml")
	fs.BoolVar(&f.Quiet, "quiet", false, "Suppress headers and decoration")
	fs.BoolVar(&f.Quiet, "q", false, "Suppress headers and decoration (shorthand)")
	fs.BoolVar(&f.Detail, "detail", false, "Show full nodes instead of summary table")
	fs.StringVar(&f.Scope, "scope", string(walker.ScopePublic), "public drops private resources and methods; private keeps them")
	fs.StringVar(&f.Path, "path", "", "Filter by resource URL (supports glob with *)")
	fs.StringVar(&f.Method, "method", "", "Filter by HTTP method")
	fs.BoolVar(&f.Verbose, "v", false, "log debug output to stderr")
}

// parseWalkArgs parses args into flags and returns the document path.
// A nil error with an empty path means help was shown.
func parseWalkArgs(fs *flag.FlagSet, flags *WalkFlags, args []string) (string, error) {
	fs.SetOutput(Stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", nil
		}
		return "", err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return "", err
	}
	if err := ValidateScope(flags.Scope); err != nil {
		return "", err
	}
	if _, err := path.Match(flags.Path, ""); err != nil {
		return "", fmt.Errorf("invalid -path pattern %q: %w", flags.Path, err)
	}
	if fs.NArg() == 0 {
		return "", fmt.Errorf("%s requires a RAML file argument", fs.Name())
	}
	return fs.Arg(0), nil
}

// walkSpec parses specPath and walks it with the scope and handlers given.
func walkSpec(specPath string, flags *WalkFlags, opts ...walker.Option) (walker.Stats, error) {
	logger := NewLogger(flags.Verbose)
	result, err := parseSpec(specPath, logger)
	if err != nil {
		return walker.Stats{}, err
	}
	opts = append([]walker.Option{walker.WithScope(walker.Scope(flags.Scope)), walker.WithLogger(logger)}, opts...)
	w := walker.New(opts...)
	w.Walk(result.Document.Node())
	return w.Stats(), nil
}

// renderNoResults prints an informative message when no results match the filters.
func renderNoResults(nodeType string, quiet bool) {
	if !quiet {
		Writef(Stderr, "No %s matched the given filters.\n", nodeType)
	}
}

// matchPath reports whether a full resource URL matches a path.Match
// pattern. * matches within one segment, so /orders/* matches
// /orders/{orderId} but not /orders/{orderId}/items.
func matchPath(url, pattern string) bool {
	if pattern == "" {
		return true
	}
	ok, err := path.Match(pattern, url)
	return err == nil && ok
}

type walkedResource struct {
	depth    int
	resource *parser.Resource
}

func handleWalkResources(args []string) error {
	fs := flag.NewFlagSet("walk resources", flag.ContinueOnError)
	var flags WalkFlags
	flags.register(fs)

	specPath, err := parseWalkArgs(fs, &flags, args)
	if err != nil || specPath == "" {
		return err
	}

	var all []walkedResource
	stats, err := walkSpec(specPath, &flags,
		walker.WithResourceHandler(func(wc *walker.WalkContext, r *parser.Resource) walker.Action {
			all = append(all, walkedResource{depth: wc.Depth, resource: r})
			return walker.Continue
		}),
	)
	if err != nil {
		return fmt.Errorf("walk resources: %w", err)
	}

	var matched []walkedResource
	for _, wr := range all {
		if !matchPath(wr.resource.FullURL(), flags.Path) {
			continue
		}
		if flags.Method != "" && !slices.Contains(verbs(wr.resource), strings.ToLower(flags.Method)) {
			continue
		}
		matched = append(matched, wr)
	}
	if len(matched) == 0 {
		renderNoResults("resources", flags.Quiet)
		return nil
	}

	if flags.Detail {
		nodes := make([]any, 0, len(matched))
		for _, wr := range matched {
			nodes = append(nodes, wr.resource.Node().Interface())
		}
		return RenderDetail(Stdout, nodes, flags.Format)
	}

	headers := []string{"URL", "ID", "DEPTH", "PRIVATE", "METHODS"}
	rows := make([][]string, 0, len(matched))
	for _, wr := range matched {
		r := wr.resource
		rows = append(rows, []string{
			r.FullURL(),
			r.UniqueID(),
			strconv.Itoa(wr.depth),
			strconv.FormatBool(r.IsPrivate()),
			strings.Join(verbs(r), ","),
		})
	}
	if flags.Format != FormatText {
		return RenderSummaryStructured(Stdout, headers, rows, flags.Format)
	}
	RenderSummaryTable(Stdout, headers, rows, flags.Quiet)
	if !flags.Quiet && stats.FilteredResources > 0 {
		Writef(Stderr, "\n%d private resource(s) removed; use -scope private to include them.\n", stats.FilteredResources)
	}
	return nil
}

type walkedMethod struct {
	resource *parser.Resource
	method   *parser.Method
}

func handleWalkMethods(args []string) error {
	fs := flag.NewFlagSet("walk methods", flag.ContinueOnError)
	var flags WalkFlags
	flags.register(fs)
	trait := fs.String("trait", "", "Filter by applied trait")
	secured := fs.Bool("secured", false, "Only methods the documentation shows a lock for")

	specPath, err := parseWalkArgs(fs, &flags, args)
	if err != nil || specPath == "" {
		return err
	}

	var all []walkedMethod
	stats, err := walkSpec(specPath, &flags,
		walker.WithMethodHandler(func(wc *walker.WalkContext, m *parser.Method) walker.Action {
			all = append(all, walkedMethod{resource: wc.Parent, method: m})
			return walker.Continue
		}),
	)
	if err != nil {
		return fmt.Errorf("walk methods: %w", err)
	}

	var matched []walkedMethod
	for _, wm := range all {
		switch {
		case !matchPath(wm.resource.FullURL(), flags.Path):
		case flags.Method != "" && !strings.EqualFold(wm.method.Verb(), flags.Method):
		case *trait != "" && !slices.Contains(wm.method.Traits(), *trait):
		case *secured && helpers.Lock(wm.method.SecuredBy()) == "":
		default:
			matched = append(matched, wm)
		}
	}
	if len(matched) == 0 {
		renderNoResults("methods", flags.Quiet)
		return nil
	}

	if flags.Detail {
		nodes := make([]any, 0, len(matched))
		for _, wm := range matched {
			nodes = append(nodes, wm.method.Node().Interface())
		}
		return RenderDetail(Stdout, nodes, flags.Format)
	}

	headers := []string{"METHOD", "URL", "LOCK", "PRIVATE", "TRAITS"}
	rows := make([][]string, 0, len(matched))
	for _, wm := range matched {
		rows = append(rows, []string{
			strings.ToUpper(wm.method.Verb()),
			wm.resource.FullURL(),
			lockName(wm.method),
			strconv.FormatBool(wm.method.IsPrivate()),
			strings.Join(wm.method.Traits(), ","),
		})
	}
	if flags.Format != FormatText {
		return RenderSummaryStructured(Stdout, headers, rows, flags.Format)
	}
	RenderSummaryTable(Stdout, headers, rows, flags.Quiet)
	if !flags.Quiet && stats.FilteredMethods > 0 {
		Writef(Stderr, "\n%d private method(s) removed; use -scope private to include them.\n", stats.FilteredMethods)
	}
	return nil
}

func verbs(r *parser.Resource) []string {
	var out []string
	for _, m := range r.Methods() {
		out = append(out, strings.ToLower(m.Verb()))
	}
	return out
}

func lockName(m *parser.Method) string {
	switch helpers.Lock(m.SecuredBy()) {
	case helpers.LockExternal:
		return "external"
	case helpers.LockInternal:
		return "internal"
	default:
		return "-"
	}
}

func printWalkUsage() {
	Writef(Stderr, `Usage: ramldoc walk <subcommand> [flags] <file|->

Annotate and filter the resource tree the way documentation builds do,
then list what remains.

Subcommands:
  resources     List or inspect resources
  methods       List or inspect methods

Common Flags:
  -format       Output format: text (default), json, yaml
  -q, -quiet    Suppress headers and decoration for piping
  -detail       Show full nodes instead of summary table
  -scope        public (default) or private
  -path         Filter by resource URL (e.g. /orders/*)
  -method       Filter by HTTP method

Methods Flags:
  -trait        Filter by applied trait
  -secured      Only methods shown with a lock

Examples:
  ramldoc walk resources api.raml
  ramldoc walk resources -scope private -path '/orders/*' api.raml
  ramldoc walk methods -method post -detail -format json api.raml
  ramldoc walk methods -secured -q api.raml
`)
}
