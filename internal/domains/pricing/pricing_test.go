package pricing_test

import (
	"testing"

	"lodge/internal/domains/pricing"
	"lodge/shared/daterange"
	"lodge/shared/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string) daterange.Range {
	t.Helper()

	rng, err := daterange.Parse(start, end)
	require.NoError(t, err)

	return rng
}

func TestRoomStay(t *testing.T) {
	tests := []struct {
		name    string
		rate    string
		start   string
		end     string
		nights  int
		total   string
		wantErr error
	}{
		{name: "three nights", rate: "100.00", start: "2025-06-01", end: "2025-06-04", nights: 3, total: "300.00"},
		{name: "one night with cents", rate: "89.99", start: "2025-06-04", end: "2025-06-05", nights: 1, total: "89.99"},
		{name: "zero rate", rate: "0", start: "2025-06-04", end: "2025-06-06", nights: 2, total: "0.00"},
		{name: "month crossing", rate: "150.50", start: "2025-06-29", end: "2025-07-02", nights: 3, total: "451.50"},
		{name: "negative rate", rate: "-1", start: "2025-06-01", end: "2025-06-02", wantErr: pricing.ErrNegativeRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := mustRange(t, tt.start, tt.end)

			stay, err := pricing.RoomStay(money.MustParse(tt.rate), rng)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.nights, stay.Nights)
			assert.Equal(t, tt.total, stay.Total.String())
		})
	}
}

func TestRoomStayIsIdempotent(t *testing.T) {
	rng := mustRange(t, "2025-06-01", "2025-06-04")
	rate := money.MustParse("100.00")

	first, err := pricing.RoomStay(rate, rng)
	require.NoError(t, err)

	second, err := pricing.RoomStay(rate, rng)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestVenueEvent(t *testing.T) {
	rooms := []pricing.RoomLine{
		{RoomID: "r1", RoomName: "Deluxe", Rate: money.MustParse("100.00"), Quantity: 2},
		{RoomID: "r2", RoomName: "Suite", Rate: money.MustParse("250.25"), Quantity: 1},
	}

	t.Run("single event is one day and no nights", func(t *testing.T) {
		quote, err := pricing.VenueEvent(pricing.EventSingle, money.MustParse("5000.00"), daterange.SingleDay(mustRange(t, "2025-07-10", "2025-07-11").Start), rooms)
		require.NoError(t, err)

		assert.Equal(t, 0, quote.Nights)
		assert.Equal(t, 1, quote.Days)
		assert.Equal(t, "5000.00", quote.VenueTotal.String())
		assert.Equal(t, "0.00", quote.RoomsTotal.String())
		assert.Equal(t, "5000.00", quote.GrandTotal.String())
		assert.Len(t, quote.Lines, 2)
	})

	t.Run("multi day event charges rooms per night", func(t *testing.T) {
		quote, err := pricing.VenueEvent(pricing.EventMulti, money.MustParse("5000.00"), mustRange(t, "2025-07-10", "2025-07-13"), rooms)
		require.NoError(t, err)

		assert.Equal(t, 3, quote.Nights)
		assert.Equal(t, 3, quote.Days)
		assert.Equal(t, "15000.00", quote.VenueTotal.String())
		assert.Equal(t, "600.00", quote.Lines[0].Subtotal.String())
		assert.Equal(t, "750.75", quote.Lines[1].Subtotal.String())
		assert.Equal(t, "1350.75", quote.RoomsTotal.String())
		assert.Equal(t, "16350.75", quote.GrandTotal.String())

		sum := quote.VenueTotal
		for _, line := range quote.Lines {
			sum = sum.Add(line.Subtotal)
		}

		assert.Equal(t, quote.GrandTotal, sum)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := pricing.VenueEvent(pricing.EventMulti, money.MustParse("1"), mustRange(t, "2025-07-10", "2025-07-11"), []pricing.RoomLine{{RoomID: "r1", Quantity: 0}})
		assert.ErrorIs(t, err, pricing.ErrInvalidQuantity)
	})

	t.Run("rejects unknown event type", func(t *testing.T) {
		_, err := pricing.VenueEvent("weekly", money.MustParse("1"), mustRange(t, "2025-07-10", "2025-07-11"), nil)
		assert.ErrorIs(t, err, pricing.ErrUnknownEventType)
	})
}
