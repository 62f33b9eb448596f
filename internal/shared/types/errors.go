package types

import "errors"

var (
	ErrNoFindingsDir        = errors.New("findings directory not found. Run the aggregator first")
	ErrNoAggregatedFindings = errors.New("no aggregated findings files found")
	ErrNoSummary            = errors.New("no findings summary files found")
)
