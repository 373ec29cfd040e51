package domain

import (
	"fmt"
	"sort"
)

// SampleTable is a row-aligned matrix of posterior draws with one named column
// per branch. Row i of every column belongs to the same joint draw.
type SampleTable struct {
	rows    int
	columns map[BranchID][]float64
}

func NewSampleTable(rows int, columns map[BranchID][]float64) (SampleTable, error) {
	if rows <= 0 {
		return SampleTable{}, fmt.Errorf("%w: got %d", ErrInvalidSampleCount, rows)
	}
	for id, column := range columns {
		if len(column) != rows {
			return SampleTable{}, fmt.Errorf("%w: branch %q has %d rows, want %d", ErrSampleMismatch, id, len(column), rows)
		}
	}

	return SampleTable{rows: rows, columns: columns}, nil
}

func (t SampleTable) Rows() int {
	return t.rows
}

func (t SampleTable) Column(id BranchID) ([]float64, bool) {
	column, ok := t.columns[id]
	return column, ok
}

func (t SampleTable) Branches() []BranchID {
	ids := make([]BranchID, 0, len(t.columns))
	for id := range t.columns {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// BestOfRest returns, for every row, the largest draw among all branches other
// than exclude.
func (t SampleTable) BestOfRest(exclude BranchID) ([]float64, error) {
	if _, ok := t.columns[exclude]; !ok {
		return nil, fmt.Errorf("branch %q not in sample table", exclude)
	}

	rest := make([][]float64, 0, len(t.columns)-1)
	for _, id := range t.Branches() {
		if id != exclude {
			rest = append(rest, t.columns[id])
		}
	}
	if len(rest) == 0 {
		return nil, fmt.Errorf("branch %q has no competitors", exclude)
	}

	best := make([]float64, t.rows)
	copy(best, rest[0])
	for _, column := range rest[1:] {
		for i, v := range column {
			if v > best[i] {
				best[i] = v
			}
		}
	}

	return best, nil
}
