package exio

// Years outside this range are rejected before they reach a smallint
// year column.
const (
	MinYear = 1995
	MaxYear = 2100
)

// CheckYear returns a validation error if year is outside
// MinYear..MaxYear.
func CheckYear(year int) error {
	if year < MinYear || year > MaxYear {
		return YearRangeError(year)
	}
	return nil
}
