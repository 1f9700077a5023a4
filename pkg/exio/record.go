package exio

// LongRecord is one cell of a wide matrix in long form.
type LongRecord struct {
	Stressor string
	Sector   string
	Region   string
	Value    float64
	Year     int
}

// RegionPartition groups long records of one matrix by region.
type RegionPartition struct {
	Year   int
	Family Family

	// Regions in first-seen order.
	Regions []string
	// Sectors is the sector vocabulary shared by all regions.
	Sectors []string
	// Stressors in source row order.
	Stressors []string

	records map[string][]LongRecord
}

// Records returns records of a region, stressors outer and sectors inner.
func (p *RegionPartition) Records(region string) []LongRecord {
	return p.records[region]
}

// Len returns the total number of records in the partition.
func (p *RegionPartition) Len() int {
	var res int
	for _, v := range p.records {
		res += len(v)
	}
	return res
}
