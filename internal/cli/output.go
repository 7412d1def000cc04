package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/addlab/issuetrack/internal/model"
	"github.com/addlab/issuetrack/internal/report"
)

// printIssue prints a single issue either as JSON or as a pretty-printed block.
func printIssue(iss *model.Issue, pretty bool) {
	if pretty {
		printPrettyIssue(iss)
		return
	}
	printJSON(iss)
}

// printIssueList prints a list of issues either as JSON or as a tabwriter table.
func printIssueList(issues []model.Issue, showing, total int, pretty bool) {
	if !pretty {
		printJSON(issues)
		return
	}
	if len(issues) == 0 {
		fmt.Println("No issues found.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tREPORTED\tCATEGORY\tLAB SECTION\tRESOLVED\tDESCRIPTION")
	for _, iss := range issues {
		resolved := ""
		if iss.Resolved() {
			resolved = iss.ResolutionDate
		}
		fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\t%s\n",
			iss.ID,
			iss.DateReported,
			iss.Category,
			model.JoinMulti(iss.LabSections),
			resolved,
			iss.Description,
		)
	}
	w.Flush()
	fmt.Printf("Showing %d of %d total issues\n", showing, total)
}

// printJSON outputs v as indented JSON to stdout.
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// printPrettyIssue outputs a single issue in a readable multi-line format.
func printPrettyIssue(iss *model.Issue) {
	fmt.Printf("Issue #%d\n", iss.ID)
	fmt.Printf("  Reported:    %s\n", iss.DateReported)
	if iss.ReportedBy != "" {
		fmt.Printf("  Reported by: %s\n", iss.ReportedBy)
	}
	fmt.Printf("  Category:    %s\n", iss.Category)
	if len(iss.Subcategories) > 0 {
		fmt.Printf("  Subcategory: %s\n", model.JoinMulti(iss.Subcategories))
	}
	if len(iss.LabSections) > 0 {
		fmt.Printf("  Lab section: %s\n", model.JoinMulti(iss.LabSections))
	}
	if len(iss.Species) > 0 {
		fmt.Printf("  Species:     %s\n", model.JoinMulti(iss.Species))
	}
	fmt.Printf("  Description: %s\n", iss.Description)
	if iss.ActionTaken != "" {
		fmt.Printf("  Action:      %s\n", iss.ActionTaken)
	}
	if iss.Resolved() {
		fmt.Printf("  Resolved:    %s\n", iss.ResolutionDate)
	}
	if iss.Notes != "" {
		fmt.Printf("  Notes:       %s\n", iss.Notes)
	}
}

// printCounts outputs a label→count mapping sorted by count descending,
// ties broken alphabetically.
func printCounts(title string, counts map[string]int) {
	fmt.Println(title)
	if len(counts) == 0 {
		fmt.Println("  (no data yet)")
		return
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, label := range labels {
		fmt.Fprintf(w, "  %s\t%d\n", label, counts[label])
	}
	w.Flush()
}

// printDashboard outputs the analytics summary in a readable format.
func printDashboard(dash *report.Dashboard) {
	st := dash.Stats
	fmt.Printf("Total issues:    %d\n", st.Total)
	fmt.Printf("Resolved:        %d\n", st.Resolved)
	fmt.Printf("Open:            %d\n", st.Open)
	if st.Total > 0 {
		fmt.Printf("Resolution rate: %.1f%%\n", st.ResolutionRate)
	} else {
		fmt.Println("Resolution rate: N/A")
	}
	fmt.Println()
	printCounts("Issues by category:", dash.ByCategory)
	fmt.Println()
	printCounts("Issues by lab section:", dash.ByLabSection)
	fmt.Println()
	printCounts("Issues by species:", dash.BySpecies)
}

// printMessage prints a simple message (used for non-issue results).
func printMessage(msg string, pretty bool) {
	if pretty {
		fmt.Println(msg)
		return
	}
	printJSON(map[string]string{"message": msg})
}
