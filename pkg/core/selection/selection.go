// Package selection implements the two-click check-in/check-out picking
// protocol. A fully booked day can never become a check-in, but it is a valid
// check-out: that asymmetry is what makes back-to-back bookings possible.
package selection

import (
	"errors"
	"time"

	"github.com/kmoroney/carraig-house/pkg/core/availability"
	"github.com/kmoroney/carraig-house/pkg/core/dateutil"
	"github.com/kmoroney/carraig-house/pkg/core/model"
)

var (
	// ErrDateFullyBooked rejects a fully booked day offered as a check-in
	ErrDateFullyBooked = errors.New("date is fully booked and cannot be a check-in")
	// ErrRangeUnavailable rejects a check-out that would span a fully booked day
	ErrRangeUnavailable = errors.New("range crosses a fully booked date")
)

// State names the three phases of date picking
type State string

const (
	StateEmpty       State = "empty"
	StateCheckinOnly State = "checkin_only"
	StateComplete    State = "complete"
)

// Selection is the transient check-in/check-out pair being picked.
// The zero value is an empty selection.
type Selection struct {
	checkin  time.Time
	checkout time.Time
}

// State reports which phase the selection is in
func (s *Selection) State() State {
	switch {
	case s.checkin.IsZero():
		return StateEmpty
	case s.checkout.IsZero():
		return StateCheckinOnly
	default:
		return StateComplete
	}
}

// Checkin returns the chosen check-in day, zero when unset
func (s *Selection) Checkin() time.Time { return s.checkin }

// Checkout returns the chosen check-out day, zero when unset
func (s *Selection) Checkout() time.Time { return s.checkout }

// Complete reports whether both dates are chosen and proceeding is allowed
func (s *Selection) Complete() bool { return s.State() == StateComplete }

// Nights returns the selected night count, zero unless complete
func (s *Selection) Nights() int {
	if !s.Complete() {
		return 0
	}
	return dateutil.Nights(s.checkin, s.checkout)
}

// Reset clears the selection, e.g. after a booking is confirmed or cancelled
func (s *Selection) Reset() {
	s.checkin = time.Time{}
	s.checkout = time.Time{}
}

// Select applies one date click. On rejection the selection is left exactly
// as it was; it is never half-applied.
func (s *Selection) Select(day time.Time, engine *availability.Engine, bookings []model.Booking) error {
	day = dateutil.StartOfDay(day)

	// A completed selection restarts with the click as a fresh check-in,
	// as does a click on or before the current check-in
	if s.State() != StateCheckinOnly || !day.After(s.checkin) {
		return s.setCheckin(day, engine, bookings)
	}

	if !engine.IsRangeAvailable(s.checkin, day, bookings) {
		return ErrRangeUnavailable
	}

	s.checkout = day
	return nil
}

func (s *Selection) setCheckin(day time.Time, engine *availability.Engine, bookings []model.Booking) error {
	if engine.DateAvailability(day, bookings).Status == availability.StatusBooked {
		return ErrDateFullyBooked
	}
	s.checkin = day
	s.checkout = time.Time{}
	return nil
}
