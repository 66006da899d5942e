package dto_test

import (
	"lodge/shared/constant"
	"lodge/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name          string
		filter        dto.Filter
		expectedWhere string
		expectedArgs  map[string]any
	}{
		{
			name:          "eq with table",
			filter:        dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq, Table: "bookings"},
			expectedWhere: "bookings.room_id = :room_id",
			expectedArgs:  map[string]any{"room_id": "r1"},
		},
		{
			name:          "strictly less",
			filter:        dto.Filter{Field: "start_date", ArgName: "window_end", Value: "2025-06-04", Operator: dto.FilterOperatorLess},
			expectedWhere: "start_date < :window_end",
			expectedArgs:  map[string]any{"window_end": "2025-06-04"},
		},
		{
			name:          "strictly greater",
			filter:        dto.Filter{Field: "end_date", ArgName: "window_start", Value: "2025-06-01", Operator: dto.FilterOperatorGreater},
			expectedWhere: "end_date > :window_start",
			expectedArgs:  map[string]any{"window_start": "2025-06-01"},
		},
		{
			name:          "in expands slices",
			filter:        dto.Filter{Field: "status", Value: []string{"pending", "confirmed"}, Operator: dto.FilterOperatorIn},
			expectedWhere: "status IN (:status_0, :status_1)",
			expectedArgs:  map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name:          "not in expands slices",
			filter:        dto.Filter{Field: "id", ArgName: "exclude", Value: []string{"b1"}, Operator: dto.FilterOperatorNotIn},
			expectedWhere: "id NOT IN (:exclude_0)",
			expectedArgs:  map[string]any{"exclude_0": "b1"},
		},
		{
			name:          "empty in matches nothing",
			filter:        dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			expectedWhere: "FALSE",
			expectedArgs:  map[string]any{},
		},
		{
			name:          "empty not in matches everything",
			filter:        dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorNotIn},
			expectedWhere: "TRUE",
			expectedArgs:  map[string]any{},
		},
		{
			name:          "scalar in is bound",
			filter:        dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorIn},
			expectedWhere: "status IN (:status)",
			expectedArgs:  map[string]any{"status": "pending"},
		},
		{
			name:          "like wraps the value",
			filter:        dto.Filter{Field: "name", Value: "Gala", Operator: dto.FilterOperatorLike, Table: "venues"},
			expectedWhere: "LOWER(venues.name) LIKE LOWER(:name)",
			expectedArgs:  map[string]any{"name": "%Gala%"},
		},
		{
			name:          "unknown operator renders nothing",
			filter:        dto.Filter{Field: "name", Value: "x", Operator: "regex"},
			expectedWhere: "",
			expectedArgs:  map[string]any{},
		},
		{
			name:          "is null",
			filter:        dto.Filter{Field: "deleted_at", Operator: dto.FilterIsNull},
			expectedWhere: "deleted_at IS NULL",
			expectedArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.expectedWhere, where)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "email", Value: "a@b.c", Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "created_by", Value: "u1", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(status = :status AND (email = :email OR created_by = :created_by))", where)
	assert.Len(t, args, 3)

	pointers := dto.FilterGroup{Filters: []any{&dto.Filter{Field: "id", Value: "v1", Operator: dto.FilterOperatorEq}, dto.Filter{Operator: "unknown"}}}
	where, _ = pointers.GetWhereClause()
	assert.Equal(t, "(id = :id)", where)

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}

func TestQueryParams_AllowSort(t *testing.T) {
	params := dto.QueryParams{SortBy: "name; DROP TABLE rooms", SortDir: dto.SortDirAsc}
	params.AllowSort("name", "price")

	assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)

	params = dto.QueryParams{SortBy: "price"}
	params.AllowSort("name", "price")

	assert.Equal(t, "price", params.SortBy)
	assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)
}

func TestFilterGroup_AppendIfPresent(t *testing.T) {
	inactive := false
	var unset *bool

	group := dto.FilterGroup{}
	group.AppendIfPresent(
		dto.Filter{Field: "email", Value: "", Operator: dto.FilterOperatorEq},
		dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
		dto.Filter{Field: "is_active", Value: &inactive, Operator: dto.FilterOperatorEq},
		dto.Filter{Field: "deleted", Value: unset, Operator: dto.FilterOperatorEq},
		dto.Filter{Field: "room_id", Value: nil, Operator: dto.FilterOperatorEq},
	)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(status = :status AND is_active = :is_active)", where)
	assert.Equal(t, map[string]any{"status": "pending", "is_active": false}, args)
}
