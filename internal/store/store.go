// Package store is the record store: it owns the persisted issue table
// and guarantees schema completeness on every load. Appends follow the
// reload-before-write pattern; with several cooperating writers the last
// write wins and concurrent appends can race an ID. That is an accepted
// limitation of the shared-sheet model, not something this package
// papers over.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/addlab/issuetrack/internal/model"
	"github.com/addlab/issuetrack/internal/sheet"
)

// RecordStore reads and appends issues over a sheet backend.
type RecordStore struct {
	backend sheet.Backend

	// now is swappable for tests.
	now func() time.Time
}

// New returns a RecordStore over the given backend.
func New(b sheet.Backend) *RecordStore {
	return &RecordStore{backend: b, now: time.Now}
}

// Load reads the persisted table. An empty or absent medium is
// initialized with the canonical header and read as zero rows. Rows are
// mapped to the canonical schema by header name: unexpected column
// layouts are recovered locally by reordering and backfilling missing
// columns with empty strings, never surfaced to the caller.
func (s *RecordStore) Load(ctx context.Context) (model.Table, error) {
	rows, err := s.backend.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("load issues: %w", err)
	}

	if len(rows) == 0 {
		if err := s.backend.Write(ctx, model.Table(nil).Rows()); err != nil {
			return nil, fmt.Errorf("initialize header: %w", err)
		}
		return model.Table{}, nil
	}

	header := rows[0]
	table := make(model.Table, 0, len(rows)-1)
	for _, row := range rows[1:] {
		table = append(table, model.FromRow(reorder(header, row)))
	}
	return table, nil
}

// reorder maps a stored row onto the canonical column order using the
// stored header. Columns absent from the header read as empty.
func reorder(header, row []string) []string {
	out := make([]string, len(model.Columns))
	for i, want := range model.Columns {
		for j, have := range header {
			if have == want && j < len(row) {
				out[i] = row[j]
				break
			}
		}
	}
	return out
}

// Append validates the new issue, reloads the table to pick up other
// writers, assigns the next ID (max existing + 1, or 1 when empty),
// stamps the report time, and overwrites the backing medium with the
// grown table. It returns the new table and the stored issue.
func (s *RecordStore) Append(ctx context.Context, iss model.Issue) (model.Table, model.Issue, error) {
	if err := iss.Validate(); err != nil {
		return nil, model.Issue{}, err
	}

	table, err := s.Load(ctx)
	if err != nil {
		return nil, model.Issue{}, err
	}

	iss.ID = table.MaxID() + 1
	iss.DateReported = s.now().Format(model.DateReportedLayout)
	table = append(table, iss)

	if err := s.backend.Write(ctx, table.Rows()); err != nil {
		return nil, model.Issue{}, fmt.Errorf("append issue: %w", err)
	}
	return table, iss, nil
}

// Close closes the underlying backend.
func (s *RecordStore) Close() error {
	return s.backend.Close()
}
