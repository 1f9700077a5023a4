package lifecycle

import (
	"context"

	"github.com/gnames/exiodb/pkg/exio"
)

// LoadReport summarizes loading of one region partition.
type LoadReport struct {
	Year   int
	Family exio.Family
	// Succeeded lists regions committed to their tables.
	Succeeded []string
	// Failed maps regions to the error that rolled their transaction back.
	Failed map[string]error
	// Rows is the number of records committed.
	Rows int64
}

// OK is true when every region of the partition was committed.
func (r *LoadReport) OK() bool {
	return len(r.Failed) == 0
}

// YearValue is a (value, year) pair used by bulk value updates.
type YearValue struct {
	Value float64
	Year  int
}

// Loader writes region partitions into per-region tables.
type Loader interface {
	// Prepare drops and recreates tables of the given regions in a single
	// transaction. Nothing changes if it fails.
	Prepare(ctx context.Context, f exio.Family, regions []string) error

	// Insert replaces rows of the partition year in every region table,
	// one transaction per region. A failed region does not stop the rest.
	Insert(ctx context.Context, p *exio.RegionPartition) (*LoadReport, error)

	// Load is Prepare followed by Insert.
	Load(ctx context.Context, p *exio.RegionPartition) (*LoadReport, error)

	// UpdateValues sets value for each year of a table that holds one row
	// per year. It returns the number of updated rows.
	UpdateValues(ctx context.Context, table string, rows []YearValue) (int64, error)
}
