package booking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
	"go.uber.org/mock/gomock"

	"lodge/infras/otel/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/handlers/booking"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/lifecycle"
	"lodge/shared/money"
)

func newRouter(t *testing.T) (*bookingMocks.MockBookingService, http.Handler) {
	ctrl := gomock.NewController(t)
	svc := bookingMocks.NewMockBookingService(ctrl)

	handler := booking.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_CreateBooking(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), dto.CreateBookingRequest{RoomID: "room-1", CheckIn: "2025-06-01", CheckOut: "2025-06-04", Guests: 2}).
			Return(dto.BookingResponse{ID: "booking-1", Nights: 3, TotalPrice: money.MustParse("300.00"), Status: lifecycle.StatusPending.String()}, nil)

		rec := serve(router, http.MethodPost, "/bookings/", `{"room_id":"room-1","check_in":"2025-06-01","check_out":"2025-06-04","guests":2}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "booking-1", gjson.Get(rec.Body.String(), "data.id").String())
		assert.Equal(t, "300.00", gjson.Get(rec.Body.String(), "data.total_price").String())
		assert.Equal(t, int64(3), gjson.Get(rec.Body.String(), "data.nights").Int())
	})

	t.Run("malformed date is rejected before the service", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodPost, "/bookings/", `{"room_id":"room-1","check_in":"06/01/2025","check_out":"2025-06-04","guests":2}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, gjson.Get(rec.Body.String(), "error").Exists())
	})

	t.Run("conflict", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, failure.Conflict("This room is not available for the selected dates."))

		rec := serve(router, http.MethodPost, "/bookings/", `{"room_id":"room-1","check_in":"2025-06-03","check_out":"2025-06-05","guests":1}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "This room is not available for the selected dates.", gjson.Get(rec.Body.String(), "error").String())
	})
}

func TestHandler_GetBookings(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
			assert.Equal(t, "created_at", params.SortBy)

			_, args := filter.GetWhereClause()
			assert.Equal(t, "confirmed", args["status"])
			assert.NotContains(t, args, "room_id")

			return dto.GetBookingsResponse{Bookings: []dto.BookingResponse{{ID: "booking-1"}}, TotalData: 1, TotalPage: 1}, nil
		})

	rec := serve(router, http.MethodGet, "/bookings/?status=confirmed&sort_by=password", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "data.total_data").Int())
	assert.Equal(t, "booking-1", gjson.Get(rec.Body.String(), "data.bookings.0.id").String())
}

func TestHandler_UpdateBookingStatus(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodPatch, "/bookings/booking-1/status", `{"status":"archived"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("updated", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().UpdateStatus(gomock.Any(), dto.UpdateStatusRequest{Status: "confirmed"}, "booking-1").
			Return(dto.BookingResponse{ID: "booking-1", Status: "confirmed"}, nil)

		rec := serve(router, http.MethodPatch, "/bookings/booking-1/status", `{"status":"confirmed"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "confirmed", gjson.Get(rec.Body.String(), "data.status").String())
	})
}

func TestHandler_CancelBooking(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Cancel(gomock.Any(), "booking-1").
		Return(dto.BookingResponse{}, failure.BadRequestFromString("Cancellation is only allowed up to 24 hours before check-in."))

	rec := serve(router, http.MethodPost, "/bookings/booking-1/cancel", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cancellation is only allowed up to 24 hours before check-in.", gjson.Get(rec.Body.String(), "error").String())
}

func TestHandler_CheckAvailability(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().CheckAvailability(gomock.Any(), gomock.Any()).Return(dto.AvailabilityResponse{Available: true, RoomID: "room-1", Nights: 2}, nil)

	rec := serve(router, http.MethodPost, "/bookings/check-availability", `{"room_id":"room-1","check_in":"2025-06-04","check_out":"2025-06-06"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gjson.Get(rec.Body.String(), "data.available").Bool())
}

func TestHandler_GetBookings_RoomFilter(t *testing.T) {
	t.Run("valid room id", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "0b6f8d5e-3c1a-4f2b-9e7d-1a2b3c4d5e6f", args["room_id"])

				return dto.GetBookingsResponse{}, nil
			})

		rec := serve(router, http.MethodGet, "/bookings/?room_id=0b6f8d5e-3c1a-4f2b-9e7d-1a2b3c4d5e6f", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed room id", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodGet, "/bookings/?room_id=abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "room_id must be a valid UUID", gjson.Get(rec.Body.String(), "error").String())
	})
}
