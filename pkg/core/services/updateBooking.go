package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kmoroney/carraig-house/pkg/core/access"
	"github.com/kmoroney/carraig-house/pkg/core/availability"
	"github.com/kmoroney/carraig-house/pkg/core/model"
)

// UpdateBookingArgs carries the booking changes. Nil fields keep the stored
// value; PIN is the candidate for the access gate, NewPIN replaces the stored
// one when set.
type UpdateBookingArgs struct {
	ID        string
	GuestName *string
	Rooms     []string
	StartDate *string
	EndDate   *string
	Notes     *string
	PIN       string
	NewPIN    *string
}

// UpdateBookingResult contains the updated booking and the refreshed snapshot
type UpdateBookingResult struct {
	Booking  model.Booking
	Bookings []model.Booking
}

// UpdateBookingStore defines the database operations needed for updating a booking
type UpdateBookingStore interface {
	GetBookings(ctx context.Context) ([]model.Booking, error)
	UpdateBooking(ctx context.Context, booking model.Booking) error
}

// UpdateBooking verifies the booking's PIN gate, applies the changes, checks
// the new stay doesn't conflict with other bookings and writes the record
// back, logging old and new states to the activity log.
func UpdateBooking(ctx context.Context, database UpdateBookingStore, engine *availability.Engine, recorder Recorder, gate access.Gate, logger *zap.Logger, args UpdateBookingArgs) (*UpdateBookingResult, error) {
	if args.ID == "" {
		return nil, fmt.Errorf("booking id is required")
	}

	bookings, err := database.GetBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	existing := findBooking(bookings, args.ID)
	if existing == nil {
		return nil, fmt.Errorf("booking %s not found", args.ID)
	}

	if err := gate.Verify(*existing, args.PIN); err != nil {
		return nil, err
	}

	catalog := engine.Catalog()
	updated := *existing

	if args.GuestName != nil {
		updated.GuestName = *args.GuestName
	}
	if args.StartDate != nil {
		updated.StartDate = *args.StartDate
	}
	if args.EndDate != nil {
		updated.EndDate = *args.EndDate
	}
	if args.Notes != nil {
		updated.Notes = *args.Notes
	}
	if args.NewPIN != nil {
		updated.PIN = access.NormalizePIN(*args.NewPIN)
	}

	entireHouse := false
	if len(args.Rooms) > 0 {
		requested := make([]string, 0, len(args.Rooms))
		for _, room := range args.Rooms {
			if room == model.EntireHouse {
				entireHouse = true
				continue
			}
			if !catalog.Contains(room) {
				return nil, fmt.Errorf("unknown room %q", room)
			}
			requested = append(requested, room)
		}
		if entireHouse || catalog.IsEntireHouse(requested) {
			entireHouse = true
			requested = catalog.IDs()
		}
		updated.Rooms = requested
	} else {
		entireHouse = catalog.IsEntireHouse(updated.Rooms)
	}

	if updated.GuestName == "" {
		return nil, fmt.Errorf("guest name is required")
	}

	checkin, checkout, err := parseStay(updated.StartDate, updated.EndDate)
	if err != nil {
		return nil, err
	}

	logger.Info("Updating booking",
		zap.String("id", updated.ID),
		zap.String("guest", updated.GuestName),
		zap.String("room", catalog.Encode(updated.Rooms)))

	others := excludeBooking(bookings, updated.ID)
	options := engine.AvailableRoomOptions(checkin, checkout, others)
	if entireHouse {
		if !containsOption(options, model.EntireHouse) {
			return nil, fmt.Errorf("the house is not fully available from %s to %s", updated.StartDate, updated.EndDate)
		}
	} else {
		for _, room := range updated.Rooms {
			if !containsOption(options, room) {
				return nil, fmt.Errorf("room %s is not available from %s to %s", room, updated.StartDate, updated.EndDate)
			}
		}
	}

	if err := database.UpdateBooking(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	recorder.Record(model.ActionUpdate, model.ActivityData{
		Old: snapshot(catalog, *existing),
		New: snapshot(catalog, updated),
	}, updated.ID)

	refreshed, err := LoadBookings(ctx, database, logger)
	if err != nil {
		return nil, fmt.Errorf("booking updated but refresh failed: %w", err)
	}

	return &UpdateBookingResult{
		Booking:  updated,
		Bookings: refreshed,
	}, nil
}
