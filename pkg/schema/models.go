// Package schema provides database models for exiodb.
//
// Region and Sector are reference tables managed by GORM AutoMigrate.
// Indicator describes per-region tables such as fr_dpba, which are
// created by the loader from the DDL generated here.
package schema

// Region is a row of the regions reference table.
type Region struct {
	// Region is a normalized EXIOBASE region code, for example "fr" or
	// "wa" (rest of Asia).
	Region string `gorm:"column:region;type:varchar(3);primaryKey" json:"region"`
}

// TableName overrides the GORM table name.
func (Region) TableName() string {
	return "regions"
}

// Sector is a row of the sectors reference table.
type Sector struct {
	// Sector is a normalized EXIOBASE sector label.
	Sector string `gorm:"column:sector;type:text;primaryKey" json:"sector"`
}

// TableName overrides the GORM table name.
func (Sector) TableName() string {
	return "sectors"
}

// Indicator is a row of a per-region indicator table. Every region has
// one table per indicator family, named {region}_dcba or {region}_dpba.
type Indicator struct {
	// Stressor is a normalized environmental pressure label.
	Stressor string `db:"stressor" json:"stressor" ddl:"TEXT"`

	// Sector is a normalized sector label.
	Sector string `db:"sector" json:"sector" ddl:"TEXT"`

	// Region is the normalized region code, same for all rows of a table.
	Region string `db:"region" json:"region" ddl:"VARCHAR(3)"`

	// Value is the indicator value, never negative.
	Value float64 `db:"value" json:"value" ddl:"DOUBLE PRECISION"`

	// Year of the EXIOBASE release the value belongs to.
	Year int16 `db:"year" json:"year" ddl:"SMALLINT"`
}
