package cli

import (
	"fmt"
	"os"
	"strings"
)

const defaultHost = "http://127.0.0.1:8049"

const usage = `issuetrack - lab issue tracker

Usage:
  issuetrack [global flags] <command> [flags]

Commands:
  serve      Run the daemon in the foreground
  status     Show daemon status
  add        Report a new issue
  list       List issues, optionally filtered by keyword
  stats      Show the analytics summary
  export     Download the issue table as an xlsx file
  vocab      Show the form vocabularies (categories, lab sections, species)
  help       Show this help
  version    Show version

Global Flags:
  --host URL     Daemon URL (default: $ISSUETRACK_HOST or http://127.0.0.1:8049)
  --pretty       Use pretty-printed output instead of JSON

Run 'issuetrack <command> --help' for more information on a command.`

// globalFlags holds flags that are available to all subcommands.
type globalFlags struct {
	host   string
	pretty bool
}

// parseGlobalFlags extracts global flags from the front of the argument list
// and returns the remaining args. Global flags must come before the subcommand.
func parseGlobalFlags(args []string) (globalFlags, []string) {
	gf := globalFlags{
		host: os.Getenv("ISSUETRACK_HOST"),
	}
	if gf.host == "" {
		gf.host = defaultHost
	}

	remaining := args
	for len(remaining) > 0 {
		switch {
		case remaining[0] == "--pretty":
			gf.pretty = true
			remaining = remaining[1:]
		case remaining[0] == "--host" && len(remaining) > 1:
			gf.host = remaining[1]
			remaining = remaining[2:]
		case strings.HasPrefix(remaining[0], "--host="):
			gf.host = strings.TrimPrefix(remaining[0], "--host=")
			remaining = remaining[1:]
		default:
			return gf, remaining
		}
	}

	return gf, remaining
}

// newClient creates a daemon HTTP client from the global flags.
func newClient(gf globalFlags) *Client {
	return NewClient(gf.host)
}

// Run dispatches the CLI based on the provided arguments.
func Run(args []string, version string) error {
	gf, remaining := parseGlobalFlags(args)

	if len(remaining) == 0 {
		fmt.Println(usage)
		return nil
	}

	cmd := remaining[0]
	subArgs := remaining[1:]

	switch cmd {
	case "help", "--help", "-h":
		fmt.Println(usage)
		return nil
	case "version", "--version", "-v":
		fmt.Printf("issuetrack version %s\n", version)
		return nil
	case "serve":
		return runServe(subArgs, gf)
	case "status":
		return runStatus(subArgs, gf)
	case "add":
		return runAdd(subArgs, gf)
	case "list":
		return runList(subArgs, gf)
	case "stats":
		return runStats(subArgs, gf)
	case "export":
		return runExport(subArgs, gf)
	case "vocab":
		return runVocab(subArgs, gf)
	default:
		return fmt.Errorf("unknown command: %s\n\n%s", cmd, usage)
	}
}
