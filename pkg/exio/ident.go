package exio

import (
	"regexp"
)

// MaxIdentLen is the PostgreSQL limit for identifier length.
const MaxIdentLen = 63

var identRe = regexp.MustCompile(`^[a-z0-9_]+$`)

// SafeIdent checks that s can be placed into SQL text as a table or
// column name. Only lower-case alphanumerics and underscores are allowed,
// up to MaxIdentLen characters.
func SafeIdent(s string) (string, error) {
	if len(s) == 0 || len(s) > MaxIdentLen || !identRe.MatchString(s) {
		return "", UnsafeIdentError(s)
	}
	return s, nil
}

// TableName returns the validated destination table of a region for the
// given family, for example "fr_dpba".
func TableName(region string, f Family) (string, error) {
	if f.Suffix() == "" {
		return "", UnsafeIdentError(region + "_" + string(f))
	}
	return SafeIdent(region + "_" + f.Suffix())
}
