package lifecycle

import (
	"context"
)

// YearReport is the outcome of processing one year.
type YearReport struct {
	Year int
	// Err is set when fetching, reading or reshaping failed.
	Err error
	// Loads has one report per indicator family.
	Loads []*LoadReport
	// Cleaned is true when staged files were removed.
	Cleaned bool
}

// OK is true when the year was fully loaded.
func (y *YearReport) OK() bool {
	if y.Err != nil || len(y.Loads) == 0 {
		return false
	}
	for _, v := range y.Loads {
		if !v.OK() {
			return false
		}
	}
	return true
}

// RunReport is the outcome of a pipeline run.
type RunReport struct {
	RunID   string
	Version *VersionInfo
	// Skipped is true when the upstream version did not change and the
	// run was not forced.
	Skipped bool
	Years   []*YearReport
}

// Populator runs the whole pipeline: version check, fetch, read, reshape,
// load and cleanup for every configured year.
type Populator interface {
	Populate(ctx context.Context) (*RunReport, error)
}
