// Package main provides the tiledoc CLI tool.
//
// Usage:
//
//	tiledoc <command> [arguments]
//
// Commands:
//
//	detect      Report the format of Tiled assets
//	dump        Print the document tree of a Tiled asset
//	help        Show help for a command
//	version     Show version information
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tmxkit/tiledoc/internal/cmd/detect"
	"github.com/tmxkit/tiledoc/internal/cmd/dump"
)

const version = "0.1.0"

// command is a subcommand backed by an internal/cmd package.
type command struct {
	name    string
	summary string
	run     func(args []string) error
	help    func(w io.Writer)
}

var commands = []command{
	{"detect", "Report the format of Tiled assets", detect.Run, detect.PrintHelp},
	{"dump", "Print the document tree of a Tiled asset", dump.Run, dump.PrintHelp},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	name, rest := args[0], args[1:]
	switch name {
	case "help", "-h", "--help":
		if name == "help" && len(rest) > 0 {
			return printCommandHelp(rest[0], stdout, stderr)
		}
		printUsage(stdout)
		return 0
	case "version", "-v", "--version":
		fmt.Fprintf(stdout, "tiledoc version %s\n", version)
		return 0
	}

	cmd, ok := lookup(name)
	if !ok {
		fmt.Fprintf(stderr, "unknown command: %s\n\n", name)
		printUsage(stderr)
		return 1
	}
	if err := cmd.run(rest); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, "tiledoc - Tiled asset inspection tool\n\nUsage:\n  tiledoc <command> [arguments]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-11s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "  %-11s %s\n", "help", "Show help for a command")
	fmt.Fprintf(w, "  %-11s %s\n", "version", "Show version information")
	fmt.Fprint(w, "\nUse \"tiledoc help <command>\" for more information about a command.\n")
}

func printCommandHelp(name string, stdout, stderr io.Writer) int {
	cmd, ok := lookup(name)
	if !ok {
		fmt.Fprintf(stderr, "unknown command: %s\n", name)
		return 1
	}
	cmd.help(stdout)
	return 0
}
