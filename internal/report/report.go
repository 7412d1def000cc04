// Package report computes the derived summaries behind the analytics
// dashboard: per-column tallies, multi-valued tallies, resolution
// statistics, and keyword search. Everything operates on an
// already-loaded table; nothing here touches the backing medium.
package report

import (
	"strings"

	"github.com/addlab/issuetrack/internal/model"
)

// CountsBy tallies the occurrences of each value in a single-valued
// column. Map iteration order is unspecified; consumers sort for
// display.
func CountsBy(table model.Table, column string) map[string]int {
	counts := make(map[string]int)
	for _, iss := range table {
		counts[iss.Field(column)]++
	}
	return counts
}

// CountsByMultiValue tallies a multi-valued column: each cell is split
// on ", ", empty cells are discarded, and every selection counts once.
// A row with lab sections "Avian, Virology" contributes one count to
// each label.
func CountsByMultiValue(table model.Table, column string) map[string]int {
	counts := make(map[string]int)
	for _, iss := range table {
		for _, v := range model.SplitMulti(iss.Field(column)) {
			counts[v]++
		}
	}
	return counts
}

// Stats summarizes resolution progress across the table.
type Stats struct {
	Total          int     `json:"total"`
	Resolved       int     `json:"resolved"`
	Open           int     `json:"open"`
	ResolutionRate float64 `json:"resolution_rate"`
}

// ResolutionStats counts resolved issues (non-empty resolution date)
// and derives the resolution rate as a percentage. The rate is 0 for an
// empty table.
func ResolutionStats(table model.Table) Stats {
	st := Stats{Total: len(table)}
	for _, iss := range table {
		if iss.Resolved() {
			st.Resolved++
		}
	}
	st.Open = st.Total - st.Resolved
	if st.Total > 0 {
		st.ResolutionRate = float64(st.Resolved) / float64(st.Total) * 100
	}
	return st
}

// Search returns the rows whose string form contains the keyword in any
// column, case-insensitively, preserving order. An empty keyword
// returns the table unchanged.
func Search(table model.Table, keyword string) model.Table {
	if keyword == "" {
		return table
	}
	needle := strings.ToLower(keyword)

	var out model.Table
	for _, iss := range table {
		for _, col := range model.Columns {
			if strings.Contains(strings.ToLower(iss.Field(col)), needle) {
				out = append(out, iss)
				break
			}
		}
	}
	return out
}

// Dashboard bundles the analytics page payload: resolution stats plus
// the category, lab section, and species breakdowns.
type Dashboard struct {
	Stats        Stats          `json:"stats"`
	ByCategory   map[string]int `json:"by_category"`
	ByLabSection map[string]int `json:"by_lab_section"`
	BySpecies    map[string]int `json:"by_species"`
}

// BuildDashboard computes the full dashboard for a table.
func BuildDashboard(table model.Table) Dashboard {
	return Dashboard{
		Stats:        ResolutionStats(table),
		ByCategory:   CountsBy(table, model.ColCategory),
		ByLabSection: CountsByMultiValue(table, model.ColLabSection),
		BySpecies:    CountsByMultiValue(table, model.ColSpecies),
	}
}
