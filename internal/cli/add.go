package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/addlab/issuetrack/internal/daemon"
)

// splitList parses a comma-separated flag value into trimmed entries.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func runAdd(args []string, gf globalFlags) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	category := fs.String("c", "", "Category (Mailing Room, Client Communication, Lab Section, Other)")
	subcategories := fs.String("s", "", "Subcategories, comma-separated (required for Mailing Room and Client Communication)")
	reportedBy := fs.String("by", "", "Reporter name")
	labSections := fs.String("lab", "", "Lab sections, comma-separated")
	species := fs.String("species", "", "Species, comma-separated")
	action := fs.String("action", "", "Action taken")
	resolved := fs.String("resolved", "", "Resolution date (YYYY-MM-DD) if already resolved")
	notes := fs.String("notes", "", "Notes or comments")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf(`usage: issuetrack add "description" -c category [-s subcategories] [flags]`)
	}
	description := strings.Join(remaining, " ")

	client := newClient(gf)
	iss, err := client.CreateIssue(daemon.CreateIssueRequest{
		ReportedBy:     *reportedBy,
		Category:       *category,
		Subcategories:  splitList(*subcategories),
		LabSections:    splitList(*labSections),
		Species:        splitList(*species),
		Description:    description,
		ActionTaken:    *action,
		ResolutionDate: *resolved,
		Notes:          *notes,
	})
	if err != nil {
		return fmt.Errorf("add issue: %w", err)
	}

	printIssue(iss, gf.pretty)
	return nil
}
