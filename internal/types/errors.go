package types

import "fmt"

// SchemaError marks an input file with no usable columns. The file is
// skipped; the run continues with the remaining files.
type SchemaError struct {
	File   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in %s: %s", e.File, e.Reason)
}

// OracleUnavailable marks an external model that could not be reached within
// its retry budget. The affected annotation degrades; the run continues.
type OracleUnavailable struct {
	Oracle string
	Err    error
}

func (e *OracleUnavailable) Error() string {
	return fmt.Sprintf("%s oracle unavailable: %v", e.Oracle, e.Err)
}

func (e *OracleUnavailable) Unwrap() error { return e.Err }

// AggregationError marks a record-count mismatch between stages. It is a
// correctness bug, not bad input, and aborts the run.
type AggregationError struct {
	Stage string
	Want  int
	Got   int
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation mismatch at %s: want %d records, got %d", e.Stage, e.Want, e.Got)
}
