package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kmoroney/carraig-house/pkg/core/access"
	"github.com/kmoroney/carraig-house/pkg/core/availability"
	"github.com/kmoroney/carraig-house/pkg/core/model"
)

// CreateBookingArgs carries the requested booking details
type CreateBookingArgs struct {
	GuestName string
	Rooms     []string // room IDs, or the single token "Entire House"
	StartDate string
	EndDate   string
	Notes     string
	PIN       string
}

// CreateBookingResult contains the created booking and the refreshed snapshot
type CreateBookingResult struct {
	Booking  model.Booking
	Bookings []model.Booking
}

// CreateBookingStore defines the database operations needed for creating a booking
type CreateBookingStore interface {
	GetBookings(ctx context.Context) ([]model.Booking, error)
	InsertBooking(ctx context.Context, booking *model.Booking) error
}

// CreateBooking validates the request, checks the rooms are free over the
// whole stay, inserts the booking and records it in the activity log.
// Validation and conflict failures return before anything is written.
func CreateBooking(ctx context.Context, database CreateBookingStore, engine *availability.Engine, recorder Recorder, logger *zap.Logger, args CreateBookingArgs) (*CreateBookingResult, error) {
	if args.GuestName == "" {
		return nil, fmt.Errorf("guest name is required")
	}
	if len(args.Rooms) == 0 {
		return nil, fmt.Errorf("at least one room is required")
	}

	checkin, checkout, err := parseStay(args.StartDate, args.EndDate)
	if err != nil {
		return nil, err
	}

	catalog := engine.Catalog()

	// Resolve the requested set to room IDs, expanding Entire House
	requested := make([]string, 0, len(args.Rooms))
	entireHouse := false
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

	logger.Info("Creating booking",
		zap.String("guest", args.GuestName),
		zap.String("room", catalog.Encode(requested)),
		zap.String("checkin", args.StartDate),
		zap.String("checkout", args.EndDate))

	bookings, err := database.GetBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	options := engine.AvailableRoomOptions(checkin, checkout, bookings)
	if entireHouse {
		if !containsOption(options, model.EntireHouse) {
			return nil, fmt.Errorf("the house is not fully available from %s to %s", args.StartDate, args.EndDate)
		}
	} else {
		for _, room := range requested {
			if !containsOption(options, room) {
				return nil, fmt.Errorf("room %s is not available from %s to %s", room, args.StartDate, args.EndDate)
			}
		}
	}

	booking := model.Booking{
		GuestName: args.GuestName,
		Rooms:     requested,
		StartDate: args.StartDate,
		EndDate:   args.EndDate,
		Notes:     args.Notes,
		PIN:       access.NormalizePIN(args.PIN),
	}

	if err := database.InsertBooking(ctx, &booking); err != nil {
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	logger.Info("Booking created", zap.String("id", booking.ID))

	recorder.Record(model.ActionCreate, model.ActivityData{
		Record: snapshot(catalog, booking),
	}, booking.ID)

	refreshed, err := LoadBookings(ctx, database, logger)
	if err != nil {
		return nil, fmt.Errorf("booking created but refresh failed: %w", err)
	}

	return &CreateBookingResult{
		Booking:  booking,
		Bookings: refreshed,
	}, nil
}
