package domain

import (
	"fmt"
	"sort"
)

type BranchID string

type BranchCounts struct {
	Enrollments int64
	Conversions int64
}

func (c BranchCounts) Validate() error {
	if c.Enrollments < 0 || c.Conversions < 0 {
		return fmt.Errorf("%w: negative counts (enrollments=%d, conversions=%d)", ErrInvalidSummary, c.Enrollments, c.Conversions)
	}
	if c.Conversions > c.Enrollments {
		return fmt.Errorf("%w: conversions %d exceed enrollments %d", ErrInvalidSummary, c.Conversions, c.Enrollments)
	}

	return nil
}

// PosteriorShape returns the Beta shape parameters of the posterior under a
// uniform Beta(1, 1) prior.
func (c BranchCounts) PosteriorShape() (alpha, beta float64) {
	return float64(c.Conversions + 1), float64(c.Enrollments - c.Conversions + 1)
}

// SummaryTable maps each branch to its enrollment and conversion counts for a
// single metric.
type SummaryTable map[BranchID]BranchCounts

func (t SummaryTable) Validate() error {
	for _, id := range t.Branches() {
		if err := t[id].Validate(); err != nil {
			return fmt.Errorf("branch %q: %w", id, err)
		}
	}

	return nil
}

// ValidateEnrolled is Validate plus the requirement that every branch has at
// least one enrollment, which the closed-form mean needs.
func (t SummaryTable) ValidateEnrolled() error {
	if err := t.Validate(); err != nil {
		return err
	}
	for _, id := range t.Branches() {
		if t[id].Enrollments == 0 {
			return fmt.Errorf("branch %q: %w: no enrollments", id, ErrInvalidSummary)
		}
	}

	return nil
}

// Branches returns the branch identifiers in sorted order.
func (t SummaryTable) Branches() []BranchID {
	ids := make([]BranchID, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func (t SummaryTable) Has(id BranchID) bool {
	_, ok := t[id]
	return ok
}

// Restrict returns a new table holding only the given branches. Unknown
// branches are skipped.
func (t SummaryTable) Restrict(ids ...BranchID) SummaryTable {
	out := make(SummaryTable, len(ids))
	for _, id := range ids {
		if counts, ok := t[id]; ok {
			out[id] = counts
		}
	}

	return out
}

func (t SummaryTable) Clone() SummaryTable {
	out := make(SummaryTable, len(t))
	for id, counts := range t {
		out[id] = counts
	}

	return out
}
