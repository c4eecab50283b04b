package services

import (
	"fmt"
	"time"

	"github.com/kmoroney/carraig-house/pkg/core/dateutil"
	"github.com/kmoroney/carraig-house/pkg/core/model"
	"github.com/kmoroney/carraig-house/pkg/core/rooms"
)

// Recorder appends booking mutations to the activity log
type Recorder interface {
	Record(action model.Action, data model.ActivityData, bookingID string) model.ActivityEntry
}

// parseStay validates a check-in/check-out pair and returns the parsed days
func parseStay(startDate, endDate string) (checkin, checkout time.Time, err error) {
	checkin, ok := dateutil.ParseCalendarDay(startDate)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid check-in date %q, expected YYYY-MM-DD", startDate)
	}

	checkout, ok = dateutil.ParseCalendarDay(endDate)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid check-out date %q, expected YYYY-MM-DD", endDate)
	}

	if !checkout.After(checkin) {
		return time.Time{}, time.Time{}, fmt.Errorf("check-out %s must be after check-in %s", endDate, startDate)
	}

	return checkin, checkout, nil
}

// findBooking locates a booking by ID
func findBooking(bookings []model.Booking, id string) *model.Booking {
	for i := range bookings {
		if bookings[i].ID == id {
			return &bookings[i]
		}
	}
	return nil
}

// excludeBooking returns the bookings without the one matching id, so a
// booking being updated doesn't conflict with itself
func excludeBooking(bookings []model.Booking, id string) []model.Booking {
	filtered := make([]model.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.ID != id {
			filtered = append(filtered, booking)
		}
	}
	return filtered
}

// snapshot captures a booking's fields for the activity log, with the room
// set in its wire encoding
func snapshot(catalog *rooms.Catalog, booking model.Booking) *model.BookingSnapshot {
	return &model.BookingSnapshot{
		GuestName: booking.GuestName,
		Room:      catalog.Encode(booking.Rooms),
		StartDate: booking.StartDate,
		EndDate:   booking.EndDate,
		Notes:     booking.Notes,
	}
}

// containsOption reports whether the bookable options include the given room
func containsOption(options []string, room string) bool {
	for _, option := range options {
		if option == room {
			return true
		}
	}
	return false
}
