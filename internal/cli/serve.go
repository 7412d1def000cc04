package cli

import (
	"context"
	"fmt"

	"github.com/addlab/issuetrack/internal/config"
	"github.com/addlab/issuetrack/internal/daemon"
)

// runServe loads the config, opens the configured backend, and runs the
// daemon in the foreground until interrupted.
func runServe(args []string, gf globalFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	d, err := daemon.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}
	return d.Run(ctx)
}

func runStatus(args []string, gf globalFlags) error {
	client := newClient(gf)
	health, err := client.Health()
	if err != nil {
		return fmt.Errorf("daemon not running at %s; start with: issuetrack serve", gf.host)
	}

	if gf.pretty {
		status, _ := health["status"].(string)
		fmt.Printf("Daemon status: %s\n", status)
		if backend, ok := health["backend"].(string); ok {
			fmt.Printf("Backend:       %s\n", backend)
		}
		if issues, ok := health["issues"].(float64); ok {
			fmt.Printf("Issues:        %d\n", int(issues))
		}
		if uptime, ok := health["uptime"].(string); ok {
			fmt.Printf("Uptime:        %s\n", uptime)
		}
	} else {
		printJSON(health)
	}
	return nil
}
