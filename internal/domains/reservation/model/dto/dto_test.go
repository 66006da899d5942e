package dto_test

import (
	"net/http"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodge/internal/domains/reservation/model/dto"
	venueDto "lodge/internal/domains/venue/model/dto"
	"lodge/shared/failure"
	"lodge/shared/validator"
)

const reservationsMigration = "../../../../../migrations/postgres/000005_create_reservations_table.up.sql"

func createRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		VenueID:       "venue-1",
		EventSchedule: venueDto.EventSchedule{EventType: "single", EventDate: "2025-06-10"},
		Attendees:     80,
		Organization:  "Acme",
		EventName:     "Annual Gala",
		ContactPerson: "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "+62 811 000",
	}
}

func TestCreateReservationRequest_Phone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{name: "short", phone: "+62 811 000"},
		{name: "with extension", phone: "+62 (021) 555-0123 ext. 4567"},
		{name: "fifty characters", phone: strings.Repeat("1", 50)},
		{name: "too long", phone: strings.Repeat("1", 51), wantErr: true},
		{name: "missing", phone: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest()
			req.Phone = tt.phone

			err := validator.ValidateStruct(&req)
			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

// A value that passes validation must fit its column, or the insert fails after the request was accepted.
func TestCreateReservationRequest_FitsColumns(t *testing.T) {
	schema, err := os.ReadFile(reservationsMigration)
	require.NoError(t, err)

	columns := map[string]int{}
	for _, match := range regexp.MustCompile(`(?m)^\s+(\w+)\s+VARCHAR\((\d+)\)`).FindAllStringSubmatch(string(schema), -1) {
		width, _ := strconv.Atoi(match[2])
		columns[match[1]] = width
	}

	require.Contains(t, columns, "phone")

	maxTag := regexp.MustCompile(`max=(\d+)`)
	typ := reflect.TypeOf(dto.CreateReservationRequest{})

	for i := range typ.NumField() {
		field := typ.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

		width, ok := columns[name]
		if !ok {
			continue
		}

		match := maxTag.FindStringSubmatch(field.Tag.Get("validate"))
		if !assert.NotNil(t, match, "%s has no max rule for VARCHAR(%d)", name, width) {
			continue
		}

		limit, _ := strconv.Atoi(match[1])
		assert.LessOrEqual(t, limit, width, "%s accepts %d characters but the column holds %d", name, limit, width)
	}
}
