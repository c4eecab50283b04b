// Package availability maps the booking set onto per-day room availability
// and validates check-in/check-out ranges. All functions are pure: they take
// the current booking snapshot as a parameter and perform no I/O.
package availability

import (
	"time"

	"github.com/kmoroney/carraig-house/pkg/core/dateutil"
	"github.com/kmoroney/carraig-house/pkg/core/model"
	"github.com/kmoroney/carraig-house/pkg/core/rooms"
)

// Status classifies a calendar day
type Status string

const (
	StatusAvailable Status = "available" // no rooms booked
	StatusPartial   Status = "partial"   // some but not all rooms booked
	StatusBooked    Status = "booked"    // no rooms available
)

// DateAvailability describes one calendar day.
// Invariants: Status == StatusBooked iff AvailableRooms is empty;
// Status == StatusAvailable iff BookedRooms is empty;
// EntireHouseBooked implies every room is in BookedRooms.
type DateAvailability struct {
	Status            Status
	AvailableRooms    []string
	BookedRooms       []string
	EntireHouseBooked bool
}

// Engine computes availability against a fixed room catalog and any
// configured blackout rules
type Engine struct {
	catalog   *rooms.Catalog
	blackouts []Blackout
}

// NewEngine creates an availability engine
func NewEngine(catalog *rooms.Catalog, blackouts ...Blackout) *Engine {
	return &Engine{catalog: catalog, blackouts: blackouts}
}

// Catalog returns the engine's room catalog
func (e *Engine) Catalog() *rooms.Catalog {
	return e.catalog
}

// DateAvailability computes the per-room status of one calendar day.
// Entire-house bookings and blackout days short-circuit to fully booked.
// A booking with a malformed date is skipped rather than failing the whole
// computation; one bad store row must not block the calendar.
func (e *Engine) DateAvailability(day time.Time, bookings []model.Booking) DateAvailability {
	day = dateutil.StartOfDay(day)

	if e.isBlackout(day) {
		return e.fullyBooked()
	}

	for _, booking := range bookings {
		if e.catalog.IsEntireHouse(booking.Rooms) && bookingCovers(booking, day) {
			return e.fullyBooked()
		}
	}

	available := make([]string, 0, len(e.catalog.Rooms()))
	booked := make([]string, 0, len(e.catalog.Rooms()))

	for _, room := range e.catalog.Rooms() {
		if e.roomBookedOn(room.ID, day, bookings) {
			booked = append(booked, room.ID)
		} else {
			available = append(available, room.ID)
		}
	}

	status := StatusPartial
	if len(booked) == 0 {
		status = StatusAvailable
	} else if len(available) == 0 {
		status = StatusBooked
	}

	return DateAvailability{
		Status:            status,
		AvailableRooms:    available,
		BookedRooms:       booked,
		EntireHouseBooked: false,
	}
}

// IsRangeAvailable reports whether no day in [checkin, checkout) is fully
// booked. The checkout day itself is excluded: the departing guest's last day
// is the incoming guest's first. Zero inputs are vacuously available.
func (e *Engine) IsRangeAvailable(checkin, checkout time.Time, bookings []model.Booking) bool {
	if checkin.IsZero() || checkout.IsZero() {
		return true
	}

	start := dateutil.StartOfDay(checkin)
	end := dateutil.StartOfDay(checkout)

	for current := start; current.Before(end); current = dateutil.NextDay(current) {
		if e.DateAvailability(current, bookings).Status == StatusBooked {
			return false
		}
	}
	return true
}

// AvailableRoomOptions lists what can still be booked for [checkin, checkout):
// "Entire House" first when every day in range is completely free, then each
// room unoccupied across the whole range, in configured order. Any partial
// occupancy on any day forecloses the whole-house option for the entire range.
func (e *Engine) AvailableRoomOptions(checkin, checkout time.Time, bookings []model.Booking) []string {
	if checkin.IsZero() || checkout.IsZero() {
		return nil
	}

	start := dateutil.StartOfDay(checkin)
	end := dateutil.StartOfDay(checkout)

	remaining := make(map[string]bool, len(e.catalog.Rooms())+1)
	remaining[model.EntireHouse] = true
	for _, id := range e.catalog.IDs() {
		remaining[id] = true
	}

	for current := start; current.Before(end); current = dateutil.NextDay(current) {
		day := e.DateAvailability(current, bookings)

		if day.EntireHouseBooked || len(day.BookedRooms) > 0 {
			delete(remaining, model.EntireHouse)
		}
		for _, id := range day.BookedRooms {
			delete(remaining, id)
		}
	}

	options := make([]string, 0, len(remaining))
	if remaining[model.EntireHouse] {
		options = append(options, model.EntireHouse)
	}
	for _, id := range e.catalog.IDs() {
		if remaining[id] {
			options = append(options, id)
		}
	}
	return options
}

func (e *Engine) fullyBooked() DateAvailability {
	return DateAvailability{
		Status:            StatusBooked,
		AvailableRooms:    []string{},
		BookedRooms:       e.catalog.IDs(),
		EntireHouseBooked: true,
	}
}

func (e *Engine) roomBookedOn(roomID string, day time.Time, bookings []model.Booking) bool {
	for _, booking := range bookings {
		if !containsRoom(booking.Rooms, roomID) {
			continue
		}
		if bookingCovers(booking, day) {
			return true
		}
	}
	return false
}

// bookingCovers reports whether day falls inside the booking's half-open
// interval [start, end). Malformed dates make the booking not applicable.
func bookingCovers(booking model.Booking, day time.Time) bool {
	start, ok := dateutil.ParseCalendarDay(booking.StartDate)
	if !ok {
		return false
	}
	end, ok := dateutil.ParseCalendarDay(booking.EndDate)
	if !ok {
		return false
	}
	return !day.Before(start) && day.Before(end)
}

func containsRoom(ids []string, roomID string) bool {
	for _, id := range ids {
		if id == roomID {
			return true
		}
	}
	return false
}
