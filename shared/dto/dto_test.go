package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lodge/shared/constant"
	"lodge/shared/dto"
	"lodge/shared/model"
	"lodge/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	modifiedAt := createdAt.Add(26 * time.Hour)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  constant.ContextGuest,
		ModifiedBy: "admin-1",
	})

	assert.Equal(t, dto.Metadata{
		CreatedAt:  timezone.Format(createdAt, constant.DateFormat),
		ModifiedAt: timezone.Format(modifiedAt, constant.DateFormat),
		CreatedBy:  constant.ContextGuest,
		ModifiedBy: "admin-1",
	}, metadata)

	parsed, err := time.Parse(constant.DateFormat, metadata.CreatedAt)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(createdAt))
}

func TestQueryParams_FromRequest(t *testing.T) {
	defaults := dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}

	tests := []struct {
		name         string
		query        string
		withDefaults bool
		expected     dto.QueryParams
	}{
		{name: "all parameters", query: "page=2&limit=20&sort_by=event_date&sort_dir=asc", expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "event_date", SortDir: dto.SortDirAsc}},
		{name: "nothing without defaults", query: "", expected: dto.QueryParams{}},
		{name: "nothing with defaults", query: "", withDefaults: true, expected: defaults},
		{name: "invalid page", query: "page=abc", withDefaults: true, expected: defaults},
		{name: "negative page", query: "page=-1", withDefaults: true, expected: defaults},
		{name: "zero page", query: "page=0", withDefaults: true, expected: defaults},
		{name: "negative limit", query: "limit=-10", withDefaults: true, expected: defaults},
		{name: "limit is capped", query: "limit=5000", expected: dto.QueryParams{Limit: constant.MaxValueLimit}},
		{name: "unknown direction is dropped", query: "sort_dir=sideways", expected: dto.QueryParams{}},
		{name: "partial with defaults", query: "page=3&sort_by=status", withDefaults: true, expected: dto.QueryParams{Page: 3, Limit: constant.DefaultValueLimit, SortBy: "status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := dto.QueryParams{}
			params.FromRequest(httptest.NewRequest("GET", "/reservations?"+tt.query, nil), tt.withDefaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 15}.Offset())
	assert.Equal(t, 30, dto.QueryParams{Page: 3, Limit: 15}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 3}.Offset())
}
