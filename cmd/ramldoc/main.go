package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/ramldoc"
	"github.com/erraggy/ramldoc/cmd/ramldoc/commands"
	"github.com/erraggy/ramldoc/internal/mcpserver"
)

// commandNames lists the subcommands for typo suggestions.
var commandNames = []string{"build", "render", "parse", "walk", "mcp", "version", "help"}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := args[0]
	var err error

	switch command {
	case "version", "-v", "--version":
		commands.Writef(commands.Stdout, "ramldoc v%s\n", ramldoc.Version())
		commands.Writef(commands.Stdout, "commit: %s\n", ramldoc.Commit())
		commands.Writef(commands.Stdout, "built: %s\n", ramldoc.BuildTime())
		commands.Writef(commands.Stdout, "go: %s\n", ramldoc.GoVersion())
		return 0
	case "help", "-h", "--help":
		printUsage()
		return 0
	case "build":
		err = commands.HandleBuild(ctx, args[1:])
	case "render":
		err = commands.HandleRender(args[1:])
	case "parse":
		err = commands.HandleParse(args[1:])
	case "walk":
		err = commands.HandleWalk(args[1:])
	case "mcp":
		err = mcpserver.Run(ctx)
	default:
		commands.Writef(commands.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			commands.Writef(commands.Stderr, "Did you mean '%s'?\n", s)
		}
		commands.Writef(commands.Stderr, "\n")
		printUsage()
		return 1
	}

	if err != nil {
		commands.Writef(commands.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// suggestCommand returns the closest command name within an edit distance
// of two, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func printUsage() {
	w := commands.Stderr
	commands.Writef(w, "ramldoc - RAML API documentation for static sites\n\n")
	commands.Writef(w, "Usage:\n")
	commands.Writef(w, "  ramldoc <command> [flags]\n\n")
	commands.Writef(w, "Commands:\n")
	commands.Writef(w, "  build      Build the site from a ramldoc configuration file\n")
	commands.Writef(w, "  render     Render one RAML document with a template\n")
	commands.Writef(w, "  parse      Parse a RAML document and print its structure\n")
	commands.Writef(w, "  walk       Query resources and methods of a RAML document\n")
	commands.Writef(w, "  mcp        Serve ramldoc tools to MCP clients over stdio\n")
	commands.Writef(w, "  version    Show version information\n")
	commands.Writef(w, "  help       Show this help message\n\n")
	commands.Writef(w, "Run 'ramldoc <command> -h' for the flags of a command.\n")
}
