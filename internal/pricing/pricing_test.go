package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	seatA = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	seatB = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	seatC = "16fd2706-8baf-433b-82eb-8c7fada847da"
)

func price(v float64) *float64 { return &v }

func TestResolvePrice(t *testing.T) {
	tests := []struct {
		name   string
		seat   *Seat
		tt     TripType
		want   float64
		wantOK bool
	}{
		{
			name:   "one way uses its own price",
			seat:   &Seat{ID: seatA, OneWayBasePrice: price(500), RoundTripBasePrice: price(900)},
			tt:     OneWay,
			want:   500,
			wantOK: true,
		},
		{
			name:   "round trip uses its own price",
			seat:   &Seat{ID: seatA, OneWayBasePrice: price(500), RoundTripBasePrice: price(900)},
			tt:     RoundTrip,
			want:   900,
			wantOK: true,
		},
		{
			name:   "effective price beats cross trip type",
			seat:   &Seat{ID: seatA, OneWayBasePrice: price(500), EffectivePrice: price(700)},
			tt:     RoundTrip,
			want:   700,
			wantOK: true,
		},
		{
			name:   "seat price after effective price",
			seat:   &Seat{ID: seatA, OneWayBasePrice: price(500), SeatPrice: price(650)},
			tt:     RoundTrip,
			want:   650,
			wantOK: true,
		},
		{
			name:   "effective price before seat price",
			seat:   &Seat{ID: seatA, EffectivePrice: price(700), SeatPrice: price(650)},
			tt:     OneWay,
			want:   700,
			wantOK: true,
		},
		{
			name:   "cross trip type as last resort",
			seat:   &Seat{ID: seatA, OneWayBasePrice: price(500)},
			tt:     RoundTrip,
			want:   500,
			wantOK: true,
		},
		{
			name:   "zero is a price",
			seat:   &Seat{ID: seatA, OneWayBasePrice: price(0), EffectivePrice: price(100)},
			tt:     OneWay,
			want:   0,
			wantOK: true,
		},
		{
			name:   "non finite and negative prices are skipped",
			seat:   &Seat{ID: seatA, OneWayBasePrice: price(math.NaN()), EffectivePrice: price(-5), SeatPrice: price(math.Inf(1))},
			tt:     OneWay,
			wantOK: false,
		},
		{
			name:   "no prices at all",
			seat:   &Seat{ID: seatA},
			tt:     OneWay,
			wantOK: false,
		},
		{
			name:   "nil seat",
			seat:   nil,
			tt:     OneWay,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolvePrice(tt.seat, tt.tt)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveTripLevelFallback_Priority(t *testing.T) {
	full := Trip{
		BasePrice:          price(300),
		OneWayBasePrice:    price(350),
		RoundTripBasePrice: price(600),
		PriceLabel:         "One way 400 / Round trip 700",
		SeatMap: []Seat{
			{ID: seatA},
			{ID: seatB, OneWayBasePrice: price(450), RoundTripBasePrice: price(800)},
		},
	}

	t.Run("seat map first", func(t *testing.T) {
		trip := full
		p, ok := ResolveTripLevelFallback(&trip, RoundTrip)
		require.True(t, ok)
		assert.Equal(t, 800.0, p)
	})

	t.Run("explicit trip price second", func(t *testing.T) {
		trip := full
		trip.SeatMap = nil
		p, ok := ResolveTripLevelFallback(&trip, OneWay)
		require.True(t, ok)
		assert.Equal(t, 350.0, p)
	})

	t.Run("label third", func(t *testing.T) {
		trip := full
		trip.SeatMap = nil
		trip.RoundTripBasePrice = nil
		p, ok := ResolveTripLevelFallback(&trip, RoundTrip)
		require.True(t, ok)
		assert.Equal(t, 700.0, p)
	})

	t.Run("base price last", func(t *testing.T) {
		trip := Trip{BasePrice: price(300)}
		p, ok := ResolveTripLevelFallback(&trip, OneWay)
		require.True(t, ok)
		assert.Equal(t, 300.0, p)
	})

	t.Run("nothing", func(t *testing.T) {
		p, ok := ResolveTripLevelFallback(&Trip{}, OneWay)
		assert.False(t, ok)
		assert.Zero(t, p)

		_, ok = ResolveTripLevelFallback(nil, OneWay)
		assert.False(t, ok)
	})
}

func TestResolveTripPrice_LoadedSeatsBeforeTrip(t *testing.T) {
	trip := Trip{
		OneWayBasePrice: price(350),
		SeatMap:         []Seat{{ID: seatC, OneWayBasePrice: price(999)}},
	}
	seats := []Seat{
		{ID: seatA},
		{ID: seatB, OneWayBasePrice: price(420)},
	}

	p, ok := ResolveTripPrice(&trip, seats, OneWay)
	require.True(t, ok)
	assert.Equal(t, 420.0, p)

	p, ok = ResolveTripPrice(&trip, nil, OneWay)
	require.True(t, ok)
	assert.Equal(t, 999.0, p, "supplied seat map is consulted when nothing is loaded")
}

func TestParsePriceLabel(t *testing.T) {
	tests := []struct {
		label         string
		wantOneWay    *float64
		wantRoundTrip *float64
	}{
		{"One way: 1,200 EGP / Round trip: 2,000 EGP", price(1200), price(2000)},
		{"ROUND TRIP 900 | oneway 500", price(500), price(900)},
		{"$120", price(120), price(120)},
		{"100 - 180.5", price(100), price(180.5)},
		{"Round trip 900", price(900), price(900)},
		{"one way 450", price(450), price(450)},
		{"", nil, nil},
		{"   ", nil, nil},
		{"call for price", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			oneWay, roundTrip := ParsePriceLabel(tt.label)
			assert.Equal(t, tt.wantOneWay, oneWay)
			assert.Equal(t, tt.wantRoundTrip, roundTrip)
		})
	}
}

func TestComputeSeatTotal(t *testing.T) {
	seats := []Seat{
		{ID: seatA, OneWayBasePrice: price(400)},
		{ID: seatB, OneWayBasePrice: price(400)},
		{ID: seatC},
	}

	t.Run("sum of selected seats", func(t *testing.T) {
		assert.Equal(t, 800.0, ComputeSeatTotal([]string{seatA, seatB}, seats, OneWay, 100, 2))
	})

	t.Run("unpriced and unknown seats take the fallback", func(t *testing.T) {
		got := ComputeSeatTotal([]string{seatA, seatC, "9b2f0c6e-0000-4000-8000-000000000000"}, seats, OneWay, 100, 3)
		assert.Equal(t, 600.0, got)
	})

	t.Run("provisional total without selection", func(t *testing.T) {
		assert.Equal(t, 600.0, ComputeSeatTotal(nil, seats, OneWay, 600, 1))
		assert.Equal(t, 1200.0, ComputeSeatTotal(nil, seats, OneWay, 600, 2))
		assert.Equal(t, 600.0, ComputeSeatTotal(nil, seats, OneWay, 600, 0), "at least one adult is assumed")
	})

	t.Run("always finite", func(t *testing.T) {
		got := ComputeSeatTotal([]string{seatC}, seats, OneWay, math.Inf(1), 1)
		assert.False(t, math.IsInf(got, 0))
	})
}

func TestComputeTotalAmount(t *testing.T) {
	assert.Equal(t, 850.0, ComputeTotalAmount(800, 50, 1))
	assert.Equal(t, 800.0, ComputeTotalAmount(800, 50, 0))
	assert.Equal(t, 800.0, ComputeTotalAmount(800, 0, 3))
	assert.Equal(t, 800.0, ComputeTotalAmount(800, 50, -1))
}

func TestCorrectTripType(t *testing.T) {
	tt, switched := CorrectTripType(RoundTrip, true, false)
	assert.Equal(t, OneWay, tt)
	assert.True(t, switched)

	tt, switched = CorrectTripType(OneWay, false, true)
	assert.Equal(t, RoundTrip, tt)
	assert.True(t, switched)

	tt, switched = CorrectTripType(OneWay, true, true)
	assert.Equal(t, OneWay, tt)
	assert.False(t, switched)

	tt, switched = CorrectTripType(RoundTrip, false, false)
	assert.Equal(t, RoundTrip, tt)
	assert.False(t, switched)
}

func TestIsValidSeatID(t *testing.T) {
	assert.True(t, IsValidSeatID(seatA))
	assert.True(t, IsValidSeatID("3F2504E0-4F89-41D3-9A0C-0305E82C3301"))
	assert.True(t, IsValidSeatID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), "version 1")

	assert.False(t, IsValidSeatID(""))
	assert.False(t, IsValidSeatID("seat-12"))
	assert.False(t, IsValidSeatID("3f2504e0-4f89-01d3-9a0c-0305e82c3301"), "version 0")
	assert.False(t, IsValidSeatID("3f2504e0-4f89-71d3-9a0c-0305e82c3301"), "version 7")
	assert.False(t, IsValidSeatID("3f2504e0-4f89-41d3-ca0c-0305e82c3301"), "microsoft variant")
	assert.False(t, IsValidSeatID("{3f2504e0-4f89-41d3-9a0c-0305e82c3301}"))
	assert.False(t, IsValidSeatID("urn:uuid:3f2504e0-4f89-41d3-9a0c-0305e82c3301"))
	assert.False(t, IsValidSeatID("3f2504e04f8941d39a0c0305e82c3301"))
}

func TestValidate(t *testing.T) {
	t.Run("submittable", func(t *testing.T) {
		v := Validate([]string{seatA, seatB}, 2, true)
		assert.True(t, v.Submittable)
		assert.Empty(t, v.Problems)
		assert.NoError(t, v.Err())
	})

	t.Run("seat count must match adults exactly", func(t *testing.T) {
		v := Validate([]string{seatA}, 2, true)
		assert.False(t, v.SeatCountMatches)
		assert.False(t, v.Submittable)

		var verr *ValidationError
		require.ErrorAs(t, v.Err(), &verr)
		assert.Equal(t, []string{"select 2 seat(s), 1 selected"}, verr.Problems)
	})

	t.Run("malformed id", func(t *testing.T) {
		v := Validate([]string{"A1"}, 1, true)
		assert.True(t, v.SeatCountMatches)
		assert.False(t, v.SeatIDsValid)
		assert.False(t, v.Submittable)
	})

	t.Run("no price", func(t *testing.T) {
		v := Validate([]string{seatA}, 1, false)
		assert.False(t, v.PriceAvailable)
		assert.False(t, v.Submittable)
		assert.Contains(t, v.Problems, "price information is not available for this trip")
	})

	t.Run("nothing selected", func(t *testing.T) {
		v := Validate(nil, 1, true)
		assert.Equal(t, []string{"select 1 seat(s) for adults"}, v.Problems)
	})

	t.Run("no adults", func(t *testing.T) {
		v := Validate(nil, 0, true)
		assert.False(t, v.SeatCountMatches)
		assert.False(t, v.Submittable)
		assert.Equal(t, []string{"at least one adult is required"}, v.Problems)
		assert.Error(t, v.Err())
	})
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "500 EGP", FormatAmount(500, true, "EGP"))
	assert.Equal(t, "1,234.5 EGP", FormatAmount(1234.5, true, "EGP"))
	assert.Equal(t, "0 EGP", FormatAmount(0, true, "EGP"))
	assert.Equal(t, "— EGP", FormatAmount(0, false, "EGP"))
}

func TestSeatLabels(t *testing.T) {
	trip := &Trip{BasePrice: price(300), RoundTripBasePrice: price(550)}

	label := SeatLabels(&Seat{ID: seatA, SeatNumber: "1A", OneWayBasePrice: price(500), RoundTripBasePrice: price(900)}, trip, "EGP")
	assert.Equal(t, SeatLabel{SeatID: seatA, SeatNumber: "1A", OneWay: "500 EGP", RoundTrip: "900 EGP"}, label)

	label = SeatLabels(&Seat{ID: seatB}, trip, "EGP")
	assert.Equal(t, "300 EGP", label.OneWay)
	assert.Equal(t, "550 EGP", label.RoundTrip)

	label = SeatLabels(&Seat{ID: seatC}, &Trip{}, "EGP")
	assert.Equal(t, "— EGP", label.OneWay)
	assert.Equal(t, "— EGP", label.RoundTrip)
}
