// Package csv reads per-subject experiment rows from a CSV file with a header
// line. One column names the subject's branch, every other column is a
// numeric metric.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bnema/abstats/internal/domain"
	"github.com/bnema/abstats/internal/ports"
)

const DefaultBranchColumn = "branch"

var ErrMissingBranchColumn = errors.New("branch column not found in header")

type Source struct {
	path         string
	branchColumn string
}

var _ ports.ObservationSource = (*Source)(nil)

func NewSource(path, branchColumn string) *Source {
	if branchColumn == "" {
		branchColumn = DefaultBranchColumn
	}

	return &Source{path: path, branchColumn: branchColumn}
}

func (s *Source) Observations(ctx context.Context) ([]domain.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	return Read(ctx, file, s.branchColumn)
}

// Read parses rows until EOF. Boolean cells ("true"/"false") are read as 1 and
// 0. Empty cells leave the metric unset for that row.
func Read(ctx context.Context, r io.Reader, branchColumn string) ([]domain.Observation, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	branchIdx := -1
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
		if header[i] == branchColumn {
			branchIdx = i
		}
	}
	if branchIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingBranchColumn, branchColumn)
	}

	var observations []domain.Observation
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset line %d: %w", line, err)
		}

		obs := domain.Observation{
			Branch: domain.BranchID(strings.TrimSpace(record[branchIdx])),
			Values: make(map[string]float64, len(record)-1),
		}
		for i, cell := range record {
			if i == branchIdx {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			value, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("dataset line %d column %q: %w", line, header[i], err)
			}
			obs.Values[header[i]] = value
		}
		observations = append(observations, obs)
	}

	return observations, nil
}

func parseCell(cell string) (float64, error) {
	switch strings.ToLower(cell) {
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}

	return strconv.ParseFloat(cell, 64)
}
