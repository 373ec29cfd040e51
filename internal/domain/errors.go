package domain

import "errors"

var (
	ErrInvalidSummary     = errors.New("invalid summary table")
	ErrNonBinaryMetric    = errors.New("metric is not binary")
	ErrMissingControl     = errors.New("control branch not found")
	ErrAmbiguousBranch    = errors.New("ambiguous treatment branch")
	ErrInvalidSampleCount = errors.New("number of samples must be positive")
	ErrSampleMismatch     = errors.New("sample sets are not row-aligned")
	ErrExperimentNotFound = errors.New("experiment not found")
	ErrMetricNotFound     = errors.New("metric not found")
)
