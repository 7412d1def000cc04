package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is the top-level classification of an issue. It determines
// which subcategory vocabulary (if any) applies.
type Category string

const (
	CategoryMailingRoom Category = "Mailing Room"
	CategoryClientComm  Category = "Client Communication"
	CategoryLabSection  Category = "Lab Section"
	CategoryOther       Category = "Other"
)

// Categories lists the valid categories in display order.
var Categories = []Category{
	CategoryMailingRoom,
	CategoryClientComm,
	CategoryLabSection,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// RequiresSubcategory reports whether issues in this category must carry
// at least one subcategory.
func (c Category) RequiresSubcategory() bool {
	return c == CategoryMailingRoom || c == CategoryClientComm
}

// Canonical column names of the persisted table, in order. Every load
// yields exactly these columns; missing ones are backfilled empty.
const (
	ColIssueID        = "Issue ID"
	ColDateReported   = "Date Reported"
	ColReportedBy     = "Reported By"
	ColCategory       = "Category"
	ColSubcategory    = "Subcategory"
	ColLabSection     = "Lab Section"
	ColSpecies        = "Species"
	ColDescription    = "Description"
	ColActionTaken    = "Action Taken"
	ColResolutionDate = "Resolution Date"
	ColNotes          = "Notes"
)

// Columns is the canonical header row.
var Columns = []string{
	ColIssueID,
	ColDateReported,
	ColReportedBy,
	ColCategory,
	ColSubcategory,
	ColLabSection,
	ColSpecies,
	ColDescription,
	ColActionTaken,
	ColResolutionDate,
	ColNotes,
}

// DateReportedLayout is the timestamp format of the Date Reported column.
const DateReportedLayout = "2006-01-02 15:04:05"

// ResolutionDateLayout is the date format of the Resolution Date column.
const ResolutionDateLayout = "2006-01-02"

// Issue is one reported problem record. Multi-valued fields are stored in
// the table as ", "-joined text.
type Issue struct {
	ID             int      `json:"id"`
	DateReported   string   `json:"date_reported"`
	ReportedBy     string   `json:"reported_by,omitempty"`
	Category       Category `json:"category"`
	Subcategories  []string `json:"subcategories,omitempty"`
	LabSections    []string `json:"lab_sections,omitempty"`
	Species        []string `json:"species,omitempty"`
	Description    string   `json:"description"`
	ActionTaken    string   `json:"action_taken,omitempty"`
	ResolutionDate string   `json:"resolution_date,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// Resolved reports whether the issue carries a resolution date.
func (i Issue) Resolved() bool {
	return strings.TrimSpace(i.ResolutionDate) != ""
}

// multiSep joins and splits multi-valued cells.
const multiSep = ", "

// JoinMulti serializes a multi-valued field for storage.
func JoinMulti(values []string) string {
	return strings.Join(values, multiSep)
}

// SplitMulti deserializes a multi-valued cell, discarding empty entries.
func SplitMulti(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(cell, multiSep) {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Field returns the issue's value for the named column in its stored
// string form. Unknown columns yield "".
func (i Issue) Field(column string) string {
	switch column {
	case ColIssueID:
		return strconv.Itoa(i.ID)
	case ColDateReported:
		return i.DateReported
	case ColReportedBy:
		return i.ReportedBy
	case ColCategory:
		return string(i.Category)
	case ColSubcategory:
		return JoinMulti(i.Subcategories)
	case ColLabSection:
		return JoinMulti(i.LabSections)
	case ColSpecies:
		return JoinMulti(i.Species)
	case ColDescription:
		return i.Description
	case ColActionTaken:
		return i.ActionTaken
	case ColResolutionDate:
		return i.ResolutionDate
	case ColNotes:
		return i.Notes
	default:
		return ""
	}
}

// Row serializes the issue as one table row in canonical column order.
func (i Issue) Row() []string {
	row := make([]string, len(Columns))
	for n, col := range Columns {
		row[n] = i.Field(col)
	}
	return row
}

// FromRow parses a canonical-order row into an Issue. Short rows are
// treated as if the trailing cells were empty.
func FromRow(row []string) Issue {
	cell := func(n int) string {
		if n < len(row) {
			return row[n]
		}
		return ""
	}

	id, _ := strconv.Atoi(strings.TrimSpace(cell(0)))
	return Issue{
		ID:             id,
		DateReported:   cell(1),
		ReportedBy:     cell(2),
		Category:       Category(cell(3)),
		Subcategories:  SplitMulti(cell(4)),
		LabSections:    SplitMulti(cell(5)),
		Species:        SplitMulti(cell(6)),
		Description:    cell(7),
		ActionTaken:    cell(8),
		ResolutionDate: cell(9),
		Notes:          cell(10),
	}
}

// Table is an ordered collection of issues, one per persisted row.
type Table []Issue

// MaxID returns the highest assigned issue ID, or 0 for an empty table.
func (t Table) MaxID() int {
	max := 0
	for _, iss := range t {
		if iss.ID > max {
			max = iss.ID
		}
	}
	return max
}

// Rows serializes the table including the canonical header row.
func (t Table) Rows() [][]string {
	rows := make([][]string, 0, len(t)+1)
	rows = append(rows, append([]string(nil), Columns...))
	for _, iss := range t {
		rows = append(rows, iss.Row())
	}
	return rows
}

// ValidationError describes a rejected issue field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the required-field rules for a new issue: a known
// category, a non-blank description, and at least one subcategory when
// the category demands it. The presentation layer validates before
// calling append and the store validates again.
func (i Issue) Validate() error {
	if i.Category == "" {
		return &ValidationError{Field: ColCategory, Reason: "category is required"}
	}
	if !i.Category.Valid() {
		return &ValidationError{Field: ColCategory, Reason: fmt.Sprintf("unknown category %q", i.Category)}
	}
	if strings.TrimSpace(i.Description) == "" {
		return &ValidationError{Field: ColDescription, Reason: "description is required"}
	}
	if i.Category.RequiresSubcategory() && len(i.Subcategories) == 0 {
		return &ValidationError{
			Field:  ColSubcategory,
			Reason: fmt.Sprintf("at least one subcategory is required for %s", i.Category),
		}
	}
	return nil
}
