package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterOperatorLess      = "less"
	FilterOperatorGreater   = "greater"
	FilterOperatorNotIn     = "not_in"
	FilterPlainQuery        = "plan"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
	FilterOperatorLess:      "<",
	FilterOperatorGreater:   ">",
}

// Filter is one predicate on a column. ArgName overrides the bind name when a column is filtered twice.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq less greater not_in"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause renders the predicate with named binds. Unknown operators render nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column, name := f.column(), f.argName()

	if op, ok := comparisons[f.Operator]; ok {
		args[name] = f.Value

		return fmt.Sprintf("%s %s :%s", column, op, name), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[name] = fmt.Sprintf("%%%v%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, name), args
	case FilterOperatorIn:
		return f.membership(column, name, "IN", "FALSE", args)
	case FilterOperatorNotIn:
		return f.membership(column, name, "NOT IN", "TRUE", args)
	case FilterPlainQuery:
		query, _ := f.Value.(string)

		return fmt.Sprintf("(%s)", query), args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	case FilterIsNull:
		return column + " IS NULL", args
	default:
		return "", args
	}
}

// membership binds each element of a slice separately. A scalar binds as a one element list, an empty slice
// collapses to whenEmpty since postgres rejects "IN ()".
func (f *Filter) membership(column, name, keyword, whenEmpty string, args map[string]any) (string, map[string]any) {
	val := reflect.ValueOf(f.Value)

	if val.Kind() != reflect.Array && val.Kind() != reflect.Slice {
		args[name] = f.Value

		return fmt.Sprintf("%s %s (:%s)", column, keyword, name), args
	}

	if val.Len() == 0 {
		return whenEmpty, args
	}

	binds := make([]string, val.Len())
	for idx := range val.Len() {
		bind := fmt.Sprintf("%s_%d", name, idx)
		args[bind] = val.Index(idx).Interface()
		binds[idx] = ":" + bind
	}

	return fmt.Sprintf("%s %s (%s)", column, keyword, strings.Join(binds, ", ")), args
}

// FilterGroup joins Filters, which may be Filter or nested FilterGroup values, with Operator (AND by default).
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, filter := range f.Filters {
		var where string
		var arg map[string]any

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case *Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		case *FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return fmt.Sprintf("(%s)", strings.Join(clauses, " "+operator+" ")), args
}

// AppendIfPresent adds each filter whose value is set. Pointer values are dereferenced,
// so an explicit false from an optional query parameter still filters.
func (f *FilterGroup) AppendIfPresent(filters ...Filter) {
	for _, filter := range filters {
		if filter.Value == nil {
			continue
		}

		val := reflect.ValueOf(filter.Value)
		if val.Kind() == reflect.Pointer {
			if val.IsNil() {
				continue
			}

			filter.Value = val.Elem().Interface()
		} else if val.IsZero() {
			continue
		}

		f.Filters = append(f.Filters, filter)
	}
}
