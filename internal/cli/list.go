package cli

import (
	"flag"
	"fmt"
	"strings"
)

func runList(args []string, gf globalFlags) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Any remaining args form the search keyword.
	keyword := strings.Join(fs.Args(), " ")

	client := newClient(gf)
	list, err := client.ListIssues(keyword)
	if err != nil {
		return fmt.Errorf("list issues: %w", err)
	}

	printIssueList(list.Issues, list.Showing, list.Total, gf.pretty)
	return nil
}
