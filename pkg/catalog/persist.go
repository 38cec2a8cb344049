package catalog

import (
	"fmt"
	"reflect"
	"strings"
)

// Rows are described with struct tags:
//
//	dbtype  column type, fields without one are not stored
//	column  column name, defaults to the lower-cased field name
//	primary "true" for primary key columns
//	index   "true" for an index, "unique" for a unique index

type column struct {
	name    string
	dbType  string
	primary bool
	index   string
	value   any
}

func columnsOf(obj any) []column {
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var out []column
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		dbType := field.Tag.Get("dbtype")
		if dbType == "" {
			continue
		}
		name := field.Tag.Get("column")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		out = append(out, column{
			name:    name,
			dbType:  dbType,
			primary: field.Tag.Get("primary") == "true",
			index:   field.Tag.Get("index"),
			value:   v.Field(i).Interface(),
		})
	}
	return out
}

func createTableSQL(obj any, table string) string {
	var defs, keys []string
	for _, c := range columnsOf(obj) {
		defs = append(defs, fmt.Sprintf("%s %s", c.name, c.dbType))
		if c.primary {
			keys = append(keys, c.name)
		}
	}
	if len(keys) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(keys, ", ")))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))
}

func indexSQL(obj any, table string) []string {
	var out []string
	for _, c := range columnsOf(obj) {
		kind := "INDEX"
		switch c.index {
		case "":
			continue
		case "unique":
			kind = "UNIQUE INDEX"
		}
		out = append(out, fmt.Sprintf("CREATE %s IF NOT EXISTS idx_%s_%s ON %s(%s)", kind, table, c.name, table, c.name))
	}
	return out
}

func insertSQL(obj any, table string) (string, []any) {
	var names, marks []string
	var values []any
	for _, c := range columnsOf(obj) {
		names = append(names, c.name)
		marks = append(marks, "?")
		values = append(values, c.value)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(names, ", "), strings.Join(marks, ", ")), values
}

func updateSQL(obj any, table string) (string, []any) {
	var sets, where []string
	var values, keys []any
	for _, c := range columnsOf(obj) {
		if c.primary {
			where = append(where, c.name+" = ?")
			keys = append(keys, c.value)
			continue
		}
		sets = append(sets, c.name+" = ?")
		values = append(values, c.value)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(sets, ", "), strings.Join(where, " AND ")), append(values, keys...)
}

func selectColumns(obj any) string {
	var names []string
	for _, c := range columnsOf(obj) {
		names = append(names, c.name)
	}
	return strings.Join(names, ", ")
}
