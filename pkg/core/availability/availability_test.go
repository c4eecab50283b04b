package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"

	"github.com/kmoroney/carraig-house/pkg/core/dateutil"
	"github.com/kmoroney/carraig-house/pkg/core/model"
	"github.com/kmoroney/carraig-house/pkg/core/rooms"
)

func testEngine(blackouts ...Blackout) *Engine {
	catalog := rooms.NewCatalog([]model.Room{
		{ID: "Master", Title: "Master Room"},
		{ID: "Twin", Title: "Twin Room"},
		{ID: "Bunk", Title: "Bunk Room"},
	})
	return NewEngine(catalog, blackouts...)
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, ok := dateutil.ParseCalendarDay(s)
	require.True(t, ok, "bad test date %q", s)
	return parsed
}

func booking(roomIDs []string, start, end string) model.Booking {
	return model.Booking{
		GuestName: "Niamh",
		Rooms:     roomIDs,
		StartDate: start,
		EndDate:   end,
	}
}

func TestDateAvailability_NoBookings(t *testing.T) {
	engine := testEngine()

	result := engine.DateAvailability(day(t, "2026-01-10"), nil)

	assert.Equal(t, StatusAvailable, result.Status)
	assert.Equal(t, []string{"Master", "Twin", "Bunk"}, result.AvailableRooms)
	assert.Empty(t, result.BookedRooms)
	assert.False(t, result.EntireHouseBooked)
}

func TestDateAvailability_EntireHouseShortCircuits(t *testing.T) {
	engine := testEngine()
	bookings := []model.Booking{
		booking([]string{"Master", "Twin", "Bunk"}, "2026-01-10", "2026-01-15"),
	}

	result := engine.DateAvailability(day(t, "2026-01-12"), bookings)

	assert.Equal(t, StatusBooked, result.Status)
	assert.True(t, result.EntireHouseBooked)
	assert.Empty(t, result.AvailableRooms)
	assert.Equal(t, []string{"Master", "Twin", "Bunk"}, result.BookedRooms)
}

func TestDateAvailability_HalfOpenBoundary(t *testing.T) {
	engine := testEngine()
	bookings := []model.Booking{
		booking([]string{"Twin"}, "2026-01-10", "2026-01-15"),
	}

	// Last occupied night is the 14th; the 15th is the departure day
	assert.Contains(t, engine.DateAvailability(day(t, "2026-01-14"), bookings).BookedRooms, "Twin")
	assert.Contains(t, engine.DateAvailability(day(t, "2026-01-15"), bookings).AvailableRooms, "Twin")
	assert.Contains(t, engine.DateAvailability(day(t, "2026-01-10"), bookings).BookedRooms, "Twin")
	assert.Contains(t, engine.DateAvailability(day(t, "2026-01-09"), bookings).AvailableRooms, "Twin")
}

func TestDateAvailability_PartialStatus(t *testing.T) {
	engine := testEngine()
	bookings := []model.Booking{
		booking([]string{"Master", "Bunk"}, "2026-02-01", "2026-02-05"),
	}

	result := engine.DateAvailability(day(t, "2026-02-03"), bookings)

	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, []string{"Twin"}, result.AvailableRooms)
	assert.Equal(t, []string{"Master", "Bunk"}, result.BookedRooms)
	assert.False(t, result.EntireHouseBooked)
}

func TestDateAvailability_AllRoomsSeparatelyBooked(t *testing.T) {
	engine := testEngine()
	bookings := []model.Booking{
		booking([]string{"Master"}, "2026-02-01", "2026-02-05"),
		booking([]string{"Twin"}, "2026-02-02", "2026-02-06"),
		booking([]string{"Bunk"}, "2026-02-01", "2026-02-04"),
	}

	result := engine.DateAvailability(day(t, "2026-02-03"), bookings)

	assert.Equal(t, StatusBooked, result.Status)
	assert.Empty(t, result.AvailableRooms)
	// Booked via three individual bookings, not a whole-house one
	assert.False(t, result.EntireHouseBooked)
}

func TestDateAvailability_MalformedBookingSkipped(t *testing.T) {
	engine := testEngine()
	bookings := []model.Booking{
		booking([]string{"Twin"}, "garbage", "2026-02-05"),
		booking([]string{"Master"}, "2026-02-01", "2026-02-05"),
	}

	result := engine.DateAvailability(day(t, "2026-02-03"), bookings)

	// The malformed Twin booking must not crash or occupy anything,
	// and must not block the valid Master booking
	assert.Equal(t, StatusPartial, result.Status)
	assert.Contains(t, result.AvailableRooms, "Twin")
	assert.Contains(t, result.BookedRooms, "Master")
}

func TestDateAvailability_Blackout(t *testing.T) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rrule.MO},
		Dtstart:   day(t, "2026-01-05"),
	})
	require.NoError(t, err)

	engine := testEngine(Blackout{Rule: rule, Reason: "cleaning day"})

	monday := engine.DateAvailability(day(t, "2026-01-12"), nil)
	tuesday := engine.DateAvailability(day(t, "2026-01-13"), nil)

	assert.Equal(t, StatusBooked, monday.Status)
	assert.True(t, monday.EntireHouseBooked)
	assert.Equal(t, StatusAvailable, tuesday.Status)
}

func TestIsRangeAvailable_ExcludesCheckoutDay(t *testing.T) {
	engine := testEngine()
	bookings := []model.Booking{
		booking([]string{"Master", "Twin", "Bunk"}, "2026-01-15", "2026-01-20"),
	}

	// Checkout lands on the first fully booked day: still fine
	assert.True(t, engine.IsRangeAvailable(day(t, "2026-01-12"), day(t, "2026-01-15"), bookings))
	// One night further crosses the booked 15th
	assert.False(t, engine.IsRangeAvailable(day(t, "2026-01-12"), day(t, "2026-01-16"), bookings))
}

func TestIsRangeAvailable_VacuousOnZeroInputs(t *testing.T) {
	engine := testEngine()
	bookings := []model.Booking{
		booking([]string{"Master", "Twin", "Bunk"}, "2026-01-01", "2026-12-31"),
	}

	assert.True(t, engine.IsRangeAvailable(time.Time{}, day(t, "2026-01-16"), bookings))
	assert.True(t, engine.IsRangeAvailable(day(t, "2026-01-12"), time.Time{}, bookings))
}

func TestIsRangeAvailable_PartialDaysAllowed(t *testing.T) {
	engine := testEngine()
	bookings := []model.Booking{
		booking([]string{"Twin"}, "2026-01-10", "2026-01-20"),
	}

	// Partial occupancy never blocks a range, only fully booked days do
	assert.True(t, engine.IsRangeAvailable(day(t, "2026-01-08"), day(t, "2026-01-25"), bookings))
}

func TestAvailableRoomOptions_AllFree(t *testing.T) {
	engine := testEngine()

	options := engine.AvailableRoomOptions(day(t, "2026-03-01"), day(t, "2026-03-05"), nil)

	assert.Equal(t, []string{model.EntireHouse, "Master", "Twin", "Bunk"}, options)
}

func TestAvailableRoomOptions_PartialForeclosesEntireHouse(t *testing.T) {
	engine := testEngine()
	bookings := []model.Booking{
		// Twin booked for a single night in the middle of the range
		booking([]string{"Twin"}, "2026-03-02", "2026-03-03"),
	}

	options := engine.AvailableRoomOptions(day(t, "2026-03-01"), day(t, "2026-03-05"), bookings)

	// Twin frees up for most of the range, but one occupied night removes it
	// and forecloses Entire House for the whole range
	assert.Equal(t, []string{"Master", "Bunk"}, options)
}

func TestAvailableRoomOptions_CheckoutDayIgnored(t *testing.T) {
	engine := testEngine()
	bookings := []model.Booking{
		booking([]string{"Master"}, "2026-03-05", "2026-03-10"),
	}

	options := engine.AvailableRoomOptions(day(t, "2026-03-01"), day(t, "2026-03-05"), bookings)

	assert.Equal(t, []string{model.EntireHouse, "Master", "Twin", "Bunk"}, options)
}

func TestAvailableRoomOptions_ZeroInputs(t *testing.T) {
	engine := testEngine()
	assert.Nil(t, engine.AvailableRoomOptions(time.Time{}, day(t, "2026-03-05"), nil))
}

func TestDateAvailability_NeverBookedOutsideInterval(t *testing.T) {
	engine := testEngine()
	bookings := []model.Booking{
		booking([]string{"Bunk"}, "2026-05-10", "2026-05-12"),
	}

	for _, d := range []string{"2026-05-08", "2026-05-09", "2026-05-12", "2026-05-13"} {
		result := engine.DateAvailability(day(t, d), bookings)
		assert.NotContains(t, result.BookedRooms, "Bunk", "day %s should be free", d)
	}
	for _, d := range []string{"2026-05-10", "2026-05-11"} {
		result := engine.DateAvailability(day(t, d), bookings)
		assert.Contains(t, result.BookedRooms, "Bunk", "day %s should be occupied", d)
	}
}
