package cli

import (
	"flag"
	"fmt"
	"os"
)

func runExport(args []string, gf globalFlags) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	output := fs.String("o", "", "Output path (default: server-suggested filename in the current directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client := newClient(gf)
	blob, filename, err := client.Export()
	if err != nil {
		return fmt.Errorf("export issues: %w", err)
	}

	path := *output
	if path == "" {
		path = filename
	}
	if err := os.WriteFile(path, blob, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printMessage(fmt.Sprintf("wrote %s (%d bytes)", path, len(blob)), gf.pretty)
	return nil
}
