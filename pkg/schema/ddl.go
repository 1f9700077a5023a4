package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// IndicatorDDL returns the CREATE TABLE statement of a per-region
// indicator table. The table name is inserted as is, it must be validated
// and quoted by the caller.
func IndicatorDDL(table string, ifNotExists bool) string {
	return generateDDL(Indicator{}, table, ifNotExists)
}

// IndicatorColumns returns the columns of indicator tables in COPY order.
func IndicatorColumns() []string {
	var res []string
	t := reflect.TypeFor[Indicator]()
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			res = append(res, tag)
		}
	}
	return res
}

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, table string, ifNotExists bool) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	cond := ""
	if ifNotExists {
		cond = "IF NOT EXISTS "
	}

	return fmt.Sprintf("CREATE TABLE %s%s (\n%s\n)",
		cond,
		table,
		strings.Join(columns, ",\n"))
}
