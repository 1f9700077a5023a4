package exio

// Family is an EXIOBASE indicator family. It determines the source file
// of a matrix and the suffix of its destination tables.
type Family string

const (
	// Consumption is the consumption-based account (DCBA).
	Consumption Family = "consumption"
	// Production is the production-based account (DPBA).
	Production Family = "production"
)

// Families returns all indicator families in processing order.
func Families() []Family {
	return []Family{Consumption, Production}
}

// ParseLens converts a query lens ("consumption" or "production") into a
// Family.
func ParseLens(s string) (Family, bool) {
	switch Family(s) {
	case Consumption:
		return Consumption, true
	case Production:
		return Production, true
	default:
		return "", false
	}
}

// Suffix returns the destination table suffix, "dcba" or "dpba".
func (f Family) Suffix() string {
	switch f {
	case Consumption:
		return "dcba"
	case Production:
		return "dpba"
	default:
		return ""
	}
}

// FileName returns the name of the satellite file holding the matrix.
func (f Family) FileName() string {
	switch f {
	case Consumption:
		return "D_cba.txt"
	case Production:
		return "D_pba.txt"
	default:
		return ""
	}
}

func (f Family) String() string {
	return string(f)
}
