// Package sheet abstracts the backing medium of the issue table: a
// spreadsheet-shaped grid of string cells with whole-grid read and
// overwrite semantics. The record store is agnostic to which backend
// holds the grid.
package sheet

import (
	"context"
	"errors"
	"sync"
)

// ErrUnavailable marks a backing medium that cannot be reached or
// written. Callers treat it as a hard failure; issue data is the only
// thing this system keeps, so there is no fallback.
var ErrUnavailable = errors.New("sheet backend unavailable")

// Backend is a grid of string cells. Read returns every row including
// the header (an empty slice means the medium is empty or absent).
// Write replaces the entire grid, header included. Neither call is
// transactional across processes; concurrent writers race and the last
// one wins.
type Backend interface {
	Read(ctx context.Context) ([][]string, error)
	Write(ctx context.Context, rows [][]string) error
	Close() error
}

// Memory is an in-process Backend used by tests and throwaway runs.
type Memory struct {
	mu   sync.Mutex
	rows [][]string
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWithRows returns an in-memory backend pre-seeded with rows.
func NewMemoryWithRows(rows [][]string) *Memory {
	m := &Memory{}
	m.rows = copyGrid(rows)
	return m
}

func (m *Memory) Read(ctx context.Context) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyGrid(m.rows), nil
}

func (m *Memory) Write(ctx context.Context, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = copyGrid(rows)
	return nil
}

func (m *Memory) Close() error { return nil }

func copyGrid(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
